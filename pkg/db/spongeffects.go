package db

import (
	"context"
	"database/sql"
)

// SpongEffectsRun ties one ML training pass to its sponge run.
type SpongEffectsRun struct {
	SpongEffectsRunID int64  `json:"spongeffects_run_ID"`
	SpongeRunID       int64  `json:"sponge_run_ID"`
	Level             string `json:"level"`
	K                 int64  `json:"k"`
	M                 int64  `json:"m"`
	MinSize           int64  `json:"min_size"`
	MaxSize           int64  `json:"max_size"`
	MinExpr           int64  `json:"min_expr"`
	Method            string `json:"method"`
}

type RunPerformanceRow struct {
	SpongEffectsRunID int64   `json:"spongeffects_run_ID"`
	ModelType         string  `json:"model_type"`
	SplitType         string  `json:"split_type"`
	Accuracy          float64 `json:"accuracy"`
	Kappa             float64 `json:"kappa"`
	AccuracyLower     float64 `json:"accuracy_lower"`
	AccuracyUpper     float64 `json:"accuracy_upper"`
	AccuracyNull      float64 `json:"accuracy_null"`
	AccuracyPValue    float64 `json:"accuracy_p_value"`
	McnemarPValue     float64 `json:"mcnemar_p_value"`
}

type ClassPerformanceRow struct {
	SpongEffectsRunID int64   `json:"spongeffects_run_ID"`
	PredictionClass   string  `json:"prediction_class"`
	Sensitivity       float64 `json:"sensitivity"`
	Specificity       float64 `json:"specificity"`
	PosPredValue      float64 `json:"pos_pred_value"`
	NegPredValue      float64 `json:"neg_pred_value"`
	Precision         float64 `json:"precision"`
	Recall            float64 `json:"recall"`
	F1                float64 `json:"f1"`
	Prevalence        float64 `json:"prevalence"`
	DetectionRate     float64 `json:"detection_rate"`
	BalancedAccuracy  float64 `json:"balanced_accuracy"`
}

type ClassDensityRow struct {
	SpongEffectsRunID int64   `json:"spongeffects_run_ID"`
	PredictionClass   string  `json:"prediction_class"`
	EnrichmentScore   float64 `json:"enrichment_score"`
	Density           float64 `json:"density"`
}

// ModuleRow groups a neighborhood around one hub node.
type ModuleRow struct {
	ModuleID             int64
	SpongEffectsRunID    int64
	HubNodeID            int64
	MeanGiniDecrease     float64
	MeanAccuracyDecrease float64
}

// SpongEffectsRuns resolves the ML runs scoped to the given sponge runs at
// one level ("gene" or "transcript").
func (s *SpongeDB) SpongEffectsRuns(ctx context.Context, runIDs []int64, level string) ([]SpongEffectsRun, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT spongeffects_run_ID, sponge_run_ID, level, k, m,
			min_size, max_size, min_expr, method
		FROM spongeffects_run
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)`
	args := int64Args(runIDs)
	if level != "" {
		query += ` AND level = ?`
		args = append(args, level)
	}
	query += ` ORDER BY spongeffects_run_ID`

	var out []SpongEffectsRun
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r SpongEffectsRun
		if err := rows.Scan(&r.SpongEffectsRunID, &r.SpongeRunID, &r.Level,
			&r.K, &r.M, &r.MinSize, &r.MaxSize, &r.MinExpr, &r.Method); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) RunPerformances(ctx context.Context, seRunIDs []int64) ([]RunPerformanceRow, error) {
	if len(seRunIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT spongeffects_run_ID, model_type, split_type, accuracy, kappa,
			accuracy_lower, accuracy_upper, accuracy_null, accuracy_p_value, mcnemar_p_value
		FROM spongeffects_run_performance
		WHERE spongeffects_run_ID IN (` + placeholders(len(seRunIDs)) + `)
		ORDER BY spongeffects_run_ID, model_type`

	var out []RunPerformanceRow
	err := scanAll(ctx, s.catalog, query, int64Args(seRunIDs), func(rows *sql.Rows) error {
		var r RunPerformanceRow
		if err := rows.Scan(&r.SpongEffectsRunID, &r.ModelType, &r.SplitType,
			&r.Accuracy, &r.Kappa, &r.AccuracyLower, &r.AccuracyUpper,
			&r.AccuracyNull, &r.AccuracyPValue, &r.McnemarPValue); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) ClassPerformances(ctx context.Context, seRunIDs []int64) ([]ClassPerformanceRow, error) {
	if len(seRunIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT spongeffects_run_ID, prediction_class, sensitivity, specificity,
			pos_pred_value, neg_pred_value, precision_value, recall, f1,
			prevalence, detection_rate, balanced_accuracy
		FROM spongeffects_run_class_performance
		WHERE spongeffects_run_ID IN (` + placeholders(len(seRunIDs)) + `)
		ORDER BY spongeffects_run_ID, prediction_class`

	var out []ClassPerformanceRow
	err := scanAll(ctx, s.catalog, query, int64Args(seRunIDs), func(rows *sql.Rows) error {
		var r ClassPerformanceRow
		if err := rows.Scan(&r.SpongEffectsRunID, &r.PredictionClass,
			&r.Sensitivity, &r.Specificity, &r.PosPredValue, &r.NegPredValue,
			&r.Precision, &r.Recall, &r.F1, &r.Prevalence, &r.DetectionRate,
			&r.BalancedAccuracy); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) EnrichmentClassDensities(ctx context.Context, seRunIDs []int64) ([]ClassDensityRow, error) {
	if len(seRunIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT spongeffects_run_ID, prediction_class, enrichment_score, density
		FROM spongeffects_enrichment_class_density
		WHERE spongeffects_run_ID IN (` + placeholders(len(seRunIDs)) + `)
		ORDER BY spongeffects_run_ID, prediction_class, enrichment_score`

	var out []ClassDensityRow
	err := scanAll(ctx, s.catalog, query, int64Args(seRunIDs), func(rows *sql.Rows) error {
		var r ClassDensityRow
		if err := rows.Scan(&r.SpongEffectsRunID, &r.PredictionClass,
			&r.EnrichmentScore, &r.Density); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

type moduleTable struct {
	table     string
	idCol     string
	hubCol    string
	memberTbl string
	memberCol string
}

var (
	geneModules = moduleTable{
		table:     "spongeffects_gene_module",
		idCol:     "spongeffects_gene_module_ID",
		hubCol:    "gene_ID",
		memberTbl: "spongeffects_gene_module_members",
		memberCol: "gene_ID",
	}
	transcriptModules = moduleTable{
		table:     "spongeffects_transcript_module",
		idCol:     "spongeffects_transcript_module_ID",
		hubCol:    "transcript_ID",
		memberTbl: "spongeffects_transcript_module_members",
		memberCol: "transcript_ID",
	}
)

func (s *SpongeDB) modules(ctx context.Context, mt moduleTable, seRunIDs []int64, limit, offset int) ([]ModuleRow, error) {
	if len(seRunIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + mt.idCol + `, spongeffects_run_ID, ` + mt.hubCol + `,
			mean_gini_decrease, mean_accuracy_decrease
		FROM ` + mt.table + `
		WHERE spongeffects_run_ID IN (` + placeholders(len(seRunIDs)) + `)
		ORDER BY mean_gini_decrease DESC, ` + mt.idCol + `
		LIMIT ? OFFSET ?`
	args := int64Args(seRunIDs)
	args = append(args, limit, offset)

	var out []ModuleRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r ModuleRow
		if err := rows.Scan(&r.ModuleID, &r.SpongEffectsRunID, &r.HubNodeID,
			&r.MeanGiniDecrease, &r.MeanAccuracyDecrease); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// moduleMembers maps module id to its member node ids, hub included by the
// caller if desired.
func (s *SpongeDB) moduleMembers(ctx context.Context, mt moduleTable, moduleIDs []int64) (map[int64][]int64, error) {
	if len(moduleIDs) == 0 {
		return map[int64][]int64{}, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + mt.idCol + `, ` + mt.memberCol + `
		FROM ` + mt.memberTbl + `
		WHERE ` + mt.idCol + ` IN (` + placeholders(len(moduleIDs)) + `)
		ORDER BY ` + mt.idCol + `, ` + mt.memberCol

	out := make(map[int64][]int64)
	err := scanAll(ctx, s.catalog, query, int64Args(moduleIDs), func(rows *sql.Rows) error {
		var moduleID, nodeID int64
		if err := rows.Scan(&moduleID, &nodeID); err != nil {
			return err
		}
		out[moduleID] = append(out[moduleID], nodeID)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneModules(ctx context.Context, seRunIDs []int64, limit, offset int) ([]ModuleRow, error) {
	return s.modules(ctx, geneModules, seRunIDs, limit, offset)
}

func (s *SpongeDB) GeneModuleMembers(ctx context.Context, moduleIDs []int64) (map[int64][]int64, error) {
	return s.moduleMembers(ctx, geneModules, moduleIDs)
}

func (s *SpongeDB) TranscriptModules(ctx context.Context, seRunIDs []int64, limit, offset int) ([]ModuleRow, error) {
	return s.modules(ctx, transcriptModules, seRunIDs, limit, offset)
}

func (s *SpongeDB) TranscriptModuleMembers(ctx context.Context, moduleIDs []int64) (map[int64][]int64, error) {
	return s.moduleMembers(ctx, transcriptModules, moduleIDs)
}

// ModulesForHubs returns the modules whose hub node is in hubIDs, used when
// the caller asks for members of specific hub genes.
func (s *SpongeDB) modulesForHubs(ctx context.Context, mt moduleTable, seRunIDs, hubIDs []int64) ([]ModuleRow, error) {
	if len(seRunIDs) == 0 || len(hubIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + mt.idCol + `, spongeffects_run_ID, ` + mt.hubCol + `,
			mean_gini_decrease, mean_accuracy_decrease
		FROM ` + mt.table + `
		WHERE spongeffects_run_ID IN (` + placeholders(len(seRunIDs)) + `)
		  AND ` + mt.hubCol + ` IN (` + placeholders(len(hubIDs)) + `)
		ORDER BY ` + mt.idCol
	args := int64Args(seRunIDs)
	args = append(args, int64Args(hubIDs)...)

	var out []ModuleRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r ModuleRow
		if err := rows.Scan(&r.ModuleID, &r.SpongEffectsRunID, &r.HubNodeID,
			&r.MeanGiniDecrease, &r.MeanAccuracyDecrease); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneModulesForHubs(ctx context.Context, seRunIDs, hubGeneIDs []int64) ([]ModuleRow, error) {
	return s.modulesForHubs(ctx, geneModules, seRunIDs, hubGeneIDs)
}

func (s *SpongeDB) TranscriptModulesForHubs(ctx context.Context, seRunIDs, hubTranscriptIDs []int64) ([]ModuleRow, error) {
	return s.modulesForHubs(ctx, transcriptModules, seRunIDs, hubTranscriptIDs)
}

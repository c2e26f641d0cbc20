package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/daisybio/SPONGE-web-backend-sub000/logger"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Cancer type prediction. The trained spongEffects models live on disk;
// classification of an uploaded expression matrix is delegated to an R
// script invoked with an explicit argument vector. The script reads the
// uploaded matrix and writes a JSON result file into the same per-request
// directory. Both are removed on every exit path.

// PredictorPaths locates the script and model artifacts on disk.
type PredictorPaths struct {
	UploadDir string
	ModelDir  string
	Script    string
}

// Prediction is the parsed output of one predictor invocation.
type Prediction struct {
	Meta struct {
		Runtime float64 `json:"runtime"`
		Level   string  `json:"level"`
	} `json:"meta"`
	Data []PredictedSample `json:"data"`
}

// PredictedSample is the predicted class of one uploaded sample.
type PredictedSample struct {
	SampleID string `json:"sample_ID"`
	TypeIdx  int64  `json:"typeIdx"`
	Type     string `json:"type"`
}

// PredictCancerType writes the uploaded matrix to a per-request directory,
// runs the predictor script against the model matching the scoped disease,
// and parses the result it wrote.
func PredictCancerType(ctx context.Context, sdb *db.SpongeDB, paths PredictorPaths, req request.Predict) (*Prediction, error) {
	if len(req.FileData) == 0 {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier, "An expression file upload is required")
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}

	// One model per disease; the scope must pin exactly one dataset.
	if len(scope.Datasets) != 1 {
		return nil, apierr.BadRequestf(apierr.ErrAmbiguousIdentifier,
			"Prediction requires exactly one matching dataset, got %d", len(scope.Datasets))
	}
	var disease string
	for _, d := range scope.Datasets {
		disease = d.DiseaseName
	}

	level := req.Level
	if level == "" {
		level = "gene"
	}

	workDir := filepath.Join(paths.UploadDir, uuid.New().String())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create prediction workspace: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("failed to remove prediction workspace " + workDir + ": " + err.Error())
		}
	}()

	inputPath := filepath.Join(workDir, "input.txt")
	if err := os.WriteFile(inputPath, req.FileData, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store uploaded expression file: %w", err)
	}
	outputPath := filepath.Join(workDir, "result.json")

	cmd := exec.CommandContext(ctx, "Rscript", paths.Script,
		"--input", inputPath,
		"--output", outputPath,
		"--model_dir", paths.ModelDir,
		"--disease", disease,
		"--level", level,
		"--subtypes", strconv.FormatBool(req.Subtypes),
		"--log", strconv.FormatBool(req.LogScaling),
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Error("predictor failed: " + string(output))
		return nil, fmt.Errorf("prediction script failed: %s: %w", string(output), apierr.ErrPredictorFailed)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("prediction script wrote no result: %w", apierr.ErrPredictorFailed)
	}
	var pred Prediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		return nil, fmt.Errorf("failed to parse prediction result: %v: %w", err, apierr.ErrPredictorFailed)
	}
	pred.Meta.Level = level
	return &pred, nil
}

package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the full route table. The API is read-mostly; the one
// mutating endpoint is the classifier upload.
func NewRouter(dbctx *DBContext) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/healthcheck", dbctx.Healthcheck)

	r.GET("/dataset", dbctx.GetDatasets)
	r.GET("/datasetInformation", dbctx.GetDatasets)
	r.GET("/dataset/spongeRunInformation", dbctx.GetSpongeRunInformation)
	r.GET("/getOverallCounts", dbctx.GetOverallCounts)

	interaction := r.Group("/ceRNAInteraction")
	{
		interaction.GET("/findAll", dbctx.InteractionFindAll)
		interaction.GET("/findSpecific", dbctx.InteractionFindSpecific)
		interaction.GET("/findceRNA", dbctx.InteractionFindCeRNA)
		interaction.GET("/getGeneNetwork", dbctx.GetGeneNetwork)
		interaction.GET("/getTranscriptNetwork", dbctx.GetTranscriptNetwork)
		interaction.GET("/checkGeneInteraction", dbctx.CheckGeneInteraction)
		interaction.GET("/checkTranscriptInteraction", dbctx.CheckTranscriptInteraction)
	}

	mirna := r.Group("/miRNAInteraction")
	{
		mirna.GET("/findSpecific", dbctx.MirnaFindSpecific)
		mirna.GET("/findceRNA", dbctx.MirnaFindCeRNA)
		mirna.GET("/getOccurence", dbctx.MirnaGetOccurrences)
	}

	expr := r.Group("/exprValue")
	{
		expr.GET("/getceRNA", dbctx.ExpressionGetCeRNA)
		expr.GET("/getTranscriptExpr", dbctx.ExpressionGetTranscript)
		expr.GET("/getmirNA", dbctx.ExpressionGetMirna)
	}

	survival := r.Group("/survivalAnalysis")
	{
		survival.GET("/sampleInformation", dbctx.SurvivalSampleInformation)
		survival.GET("/getRates", dbctx.SurvivalGetRates)
		survival.GET("/getPValues", dbctx.SurvivalGetPValues)
	}

	r.GET("/comparison", dbctx.GetComparisons)
	r.GET("/differentialExpression", dbctx.GetDifferentialExpression)
	r.GET("/differentialExpressionTranscript", dbctx.GetDifferentialExpressionTranscript)

	r.GET("/gseaSets", dbctx.GetGseaSets)
	r.GET("/gseaTerms", dbctx.GetGseaTerms)
	r.GET("/gseaResults", dbctx.GetGseaResults)
	r.GET("/gseaPlot", dbctx.GetGseaPlot)

	spongEffects := r.Group("/spongEffects")
	{
		spongEffects.GET("/getRunPerformance", dbctx.SpongEffectsGetRunPerformance)
		spongEffects.GET("/getRunClassPerformance", dbctx.SpongEffectsGetRunClassPerformance)
		spongEffects.GET("/enrichmentScoreDistributions", dbctx.SpongEffectsEnrichmentScoreDistributions)
		spongEffects.GET("/getSpongEffectsGeneModules", dbctx.SpongEffectsGetGeneModules)
		spongEffects.GET("/getSpongEffectsGeneModuleMembers", dbctx.SpongEffectsGetGeneModuleMembers)
		spongEffects.GET("/getSpongEffectsTranscriptModules", dbctx.SpongEffectsGetTranscriptModules)
		spongEffects.GET("/getSpongEffectsTranscriptModuleMembers", dbctx.SpongEffectsGetTranscriptModuleMembers)
		spongEffects.POST("/predictCancerType", dbctx.SpongEffectsPredictCancerType)
	}

	splicing := r.Group("/alternativeSplicing")
	{
		splicing.GET("/getTranscriptEvents", dbctx.SplicingGetTranscriptEvents)
		splicing.GET("/getEventPositions", dbctx.SplicingGetEventPositions)
		splicing.GET("/getExonsForPosition", dbctx.SplicingGetExonsForPosition)
		splicing.GET("/getPsiValue", dbctx.SplicingGetPsiValue)
	}

	r.GET("/stringSearch", dbctx.StringSearch)
	r.GET("/stringSearchTranscript", dbctx.StringSearchTranscript)
	r.GET("/getGeneInformation", dbctx.GetGeneInformation)
	r.GET("/getTranscriptInformation", dbctx.GetTranscriptInformation)
	r.GET("/getTranscriptGene", dbctx.GetTranscriptGene)
	r.GET("/getGeneTranscripts", dbctx.GetGeneTranscripts)
	r.GET("/getGeneCount", dbctx.GetInteractionCounts)
	r.GET("/getHallmark", dbctx.GetHallmark)
	r.GET("/getGeneOntology", dbctx.GetGeneOntology)
	r.GET("/getWikipathway", dbctx.GetWikipathway)
	r.GET("/networkResults", dbctx.GetNetworkResults)

	return r
}

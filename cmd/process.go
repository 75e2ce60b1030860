package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/report"
)

var (
	processSurvey           string
	processAnalysis         string
	processOut              string
	processGeoJSON          string
	processShapefile        string
	processPoles            []string
	processRules            string
	processAttachmentPolicy string
	processAttributePolicy  string
	processMidspanFallback  bool
	processSave             bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reconcile the datasets and write the make-ready report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if processAttachmentPolicy != "" {
			cfg.Engine.AttachmentPolicy = processAttachmentPolicy
		}
		if processAttributePolicy != "" {
			cfg.Engine.AttributePolicy = processAttributePolicy
		}
		if processMidspanFallback {
			cfg.Engine.MidspanPointFallback = true
		}
		if err := cfg.Validate("process"); err != nil {
			return err
		}

		doc, project, err := loadInputs(processSurvey, processAnalysis)
		if err != nil {
			return err
		}

		eng, err := buildEngine(cfg.Engine, processPoles, processRules)
		if err != nil {
			return err
		}

		result, err := eng.Run(ctx, doc, project)
		if err != nil {
			return err
		}

		if err := report.WriteXLSX(processOut, result); err != nil {
			return err
		}
		zap.L().Info("report written", zap.String("path", processOut))

		if processGeoJSON != "" {
			if err := report.WriteGeoJSON(processGeoJSON, result.Geo); err != nil {
				return err
			}
		}
		if processShapefile != "" {
			if err := report.WriteShapefile(processShapefile, result.Geo); err != nil {
				return err
			}
		}

		if processSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err := st.CreateRun(ctx, model.RunInput{
				SurveyFile:   processSurvey,
				AnalysisFile: processAnalysis,
			})
			if err != nil {
				return err
			}
			if err := st.UpdateRunResult(ctx, run.ID, result); err != nil {
				return err
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		fmt.Fprintf(os.Stderr, "Processed %d poles (%d failed)\n",
			len(result.Poles), len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Pole, f.Error)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processSurvey, "survey", "", "field survey JSON export")
	processCmd.Flags().StringVar(&processAnalysis, "analysis", "", "engineering analysis JSON export")
	processCmd.Flags().StringVar(&processOut, "out", "makeready_report.xlsx", "output XLSX path")
	processCmd.Flags().StringVar(&processGeoJSON, "geojson", "", "also write a GeoJSON pole summary")
	processCmd.Flags().StringVar(&processShapefile, "shapefile", "", "also write a point shapefile")
	processCmd.Flags().StringSliceVar(&processPoles, "poles", nil, "restrict to specific pole IDs")
	processCmd.Flags().StringVar(&processRules, "rules", "", "classification rules YAML (default from config)")
	processCmd.Flags().StringVar(&processAttachmentPolicy, "attachment-policy", "", "height conflict policy: prefer_survey, prefer_analysis, highlight_differences")
	processCmd.Flags().StringVar(&processAttributePolicy, "attribute-policy", "", "attribute conflict policy: prefer_survey, prefer_analysis, highlight_differences")
	processCmd.Flags().BoolVar(&processMidspanFallback, "midspan-point-fallback", false, "let point measurements stand in for missing midspan heights")
	processCmd.Flags().BoolVar(&processSave, "save", false, "persist the run to the store")
	rootCmd.AddCommand(processCmd)
}

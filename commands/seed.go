package commands

import (
	"healthtrack/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedPrograms are created by `healthtrack seed`.
var seedPrograms = []services.ProgramInput{
	{Name: "TB Control", Description: strPtr("Tuberculosis screening, treatment and follow-up")},
	{Name: "Malaria", Description: strPtr("Malaria prevention and treatment")},
	{Name: "HIV Care", Description: strPtr("HIV testing, counselling and antiretroviral therapy")},
	{Name: "Maternal Health", Description: strPtr("Antenatal and postnatal care")},
	{Name: "Diabetes", Description: strPtr("Blood sugar monitoring and lifestyle support")},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create sample programs (existing names are skipped)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		programs := services.NewProgramService(store)
		created := 0
		for _, in := range seedPrograms {
			_, err := programs.Create(cmd.Context(), in)
			switch {
			case services.IsKind(err, services.KindConflict):
				logger.Info("program exists, skipping", zap.String("name", in.Name))
			case err != nil:
				return err
			default:
				created++
			}
		}

		logger.Info("seed completed", zap.Int("created", created))
		return nil
	},
}

func strPtr(s string) *string { return &s }

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tourplanner",
		Short:        "Camera placement for virtual tours",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func addPlanFlags(cmd *cobra.Command, f *planFlags) {
	cmd.Flags().IntVar(&f.maxCameras, "max-cameras", 0, "camera cap per candidate, 0 for none (overrides tour.yaml)")
	cmd.Flags().Float64Var(&f.precision, "precision", 0, "grid cell size in scene units (overrides tour.yaml)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "rows searched concurrently (overrides tour.yaml)")
	cmd.Flags().BoolVar(&f.link, "link", false, "link cameras in line of sight of each other")
}

func planCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan [project-path]",
		Short: "Place cameras and write the hotspot list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.setCameras = cmd.Flags().Changed("max-cameras")
			return runPlan(cmd.Context(), args[0], flags)
		},
	}

	addPlanFlags(cmd, &flags)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate the project configuration and scene without searching",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func inspectCmd() *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect [project-path]",
		Short: "Render the candidate grid for one start cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.setCameras = cmd.Flags().Changed("max-cameras")
			return runInspect(args[0], flags)
		},
	}

	addPlanFlags(cmd, &flags.planFlags)
	cmd.Flags().IntVar(&flags.x, "x", 0, "start cell x index")
	cmd.Flags().IntVar(&flags.z, "z", 0, "start cell z index")
	cmd.Flags().IntVar(&flags.step, "step", -1, "show the grid after this camera, -1 for the final grid")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "table", "output format: table, png or html")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output file for png and html")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local inspection server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

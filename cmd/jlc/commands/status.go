package commands

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/ui/output"
	"go.trai.ch/jlc/internal/ui/style"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [builddir]",
		Short: "Compare the recorded build artifacts with the files on disk",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildDir := domain.DefaultBuildDirName
			if len(args) > 0 {
				buildDir = args[0]
			}
			if !filepath.IsAbs(buildDir) {
				defaults, err := c.defaults()
				if err != nil {
					return err
				}
				buildDir = filepath.Join(defaults.WorkDir, buildDir)
			}

			manifest, statuses, err := c.app.Status(cmd.Context(), buildDir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if manifest == nil {
				_, _ = fmt.Fprintf(w, "No build recorded in %s\n", buildDir)
				return nil
			}

			renderer := lipgloss.NewRenderer(w)
			renderer.SetColorProfile(output.ColorProfile())
			dim := renderer.NewStyle().Foreground(style.Slate)

			_, _ = fmt.Fprintf(w, "%s %s\n", manifest.Program,
				dim.Render(fmt.Sprintf("(julia %s, %s)", manifest.RuntimeVersion, manifest.Platform)))
			for _, s := range statuses {
				icon, color := stateIcon(s.State)
				_, _ = fmt.Fprintf(w, "  %s %-10s %s %s\n",
					renderer.NewStyle().Foreground(color).Render(icon),
					s.Record.Kind,
					s.Record.Name,
					dim.Render(string(s.State)),
				)
			}
			return nil
		},
	}
}

func stateIcon(state domain.ArtifactState) (string, lipgloss.Color) {
	switch state {
	case domain.ArtifactUnchanged:
		return style.Check, style.Green
	case domain.ArtifactModified:
		return style.Warning, style.Yellow
	default:
		return style.Cross, style.Red
	}
}

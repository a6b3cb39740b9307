package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/ecs"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/decker502/estudio-intro/pkg/systems"
	"github.com/decker502/estudio-intro/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// cli 所有子命令共享的状态
type cli struct {
	configPath string
	logLevel   string
	logger     hclog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:           "introctl",
		Short:         "Inspect the Estudio G intro timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.logger = hclog.New(&hclog.LoggerOptions{
				Name:   "introctl",
				Level:  hclog.LevelFromString(c.logLevel),
				Output: cmd.ErrOrStderr(),
			})
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Intro timeline YAML (default: built-in timeline)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		c.framesCmd(),
		c.scaleCmd(),
		c.springCmd(),
		c.validateCmd(),
		c.settingsCmd(),
	)
	return root
}

// loadConfig 读取 --config 指定的配置，未指定时使用内置默认值
func (c *cli) loadConfig() (*config.IntroConfig, error) {
	if c.configPath == "" {
		c.logger.Debug("using built-in timeline")
		return config.DefaultIntroConfig(), nil
	}
	c.logger.Debug("loading timeline", "path", c.configPath)
	return config.LoadIntroConfig(c.configPath)
}

func (c *cli) framesCmd() *cobra.Command {
	var (
		width, height  float64
		from, to, step int
	)
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Print the composition at a range of frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ts, err := systems.NewTimelineSystem(ecs.NewEntityManager(), cfg, config.Viewport{Width: width, Height: height})
			if err != nil {
				return err
			}
			if to < 0 {
				to = ts.TotalFrames()
			}
			if step <= 0 {
				return fmt.Errorf("--step must be positive, got %d", step)
			}
			c.logger.Info("composing frames", "from", from, "to", to, "step", step, "total", ts.TotalFrames())
			return writeFrames(cmd.OutOrStdout(), ts, from, to, step)
		},
	}
	cmd.Flags().Float64Var(&width, "width", config.ReferenceWidth, "Viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", config.ReferenceHeight, "Viewport height in pixels")
	cmd.Flags().IntVar(&from, "from", 0, "First frame")
	cmd.Flags().IntVar(&to, "to", -1, "Last frame (default: total frames)")
	cmd.Flags().IntVar(&step, "step", 15, "Frame step")
	return cmd
}

// writeFrames 输出逐帧合成结果表格
func writeFrames(out io.Writer, ts *systems.TimelineSystem, from, to, step int) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tOPACITY\tLINES\tNAME\tLOGO\tTAGLINE\tDUST")
	for f := from; f <= to; f += step {
		comp := ts.Compose(f)
		phases := ts.PhasesAt(f)

		lines, name, logo, tagline := "-", "-", "-", "-"
		if l, ok := comp.Layer(components.LayerLines); ok {
			lines = fmt.Sprintf("%s p=%.3f", l.Phase, l.Lines.Progress)
		}
		if l, ok := comp.Layer(components.LayerStudioName); ok {
			name = fmt.Sprintf("%s o=%.2f y=%.1f", l.Phase, l.StudioName.Opacity, l.StudioName.TranslateY)
		}
		if l, ok := comp.Layer(components.LayerLogo); ok {
			logo = fmt.Sprintf("%s o=%.2f s=%.3f", l.Phase, l.Logo.Opacity, l.Logo.Scale)
		}
		if l, ok := comp.Layer(components.LayerTagline); ok {
			visible := 0
			for _, w := range l.Tagline.Words {
				if w.Opacity > 0 {
					visible++
				}
			}
			tagline = fmt.Sprintf("%s %d/%d", l.Phase, visible, len(l.Tagline.Words))
		}
		// 未挂载的图层显示阶段名
		if lines == "-" {
			lines = phases[components.LayerLines].String()
		}
		if name == "-" {
			name = phases[components.LayerStudioName].String()
		}
		if logo == "-" {
			logo = phases[components.LayerLogo].String()
		}
		if tagline == "-" {
			tagline = phases[components.LayerTagline].String()
		}

		fmt.Fprintf(tw, "%d\t%.3f\t%s\t%s\t%s\t%s\t%d\n",
			f, comp.Opacity, lines, name, logo, tagline, len(comp.Dust.Particles))
	}
	return tw.Flush()
}

func (c *cli) scaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale WIDTHxHEIGHT",
		Short: "Print the responsive sizes for a viewport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseDimensions(args[0])
			if err != nil {
				return err
			}
			writeScale(cmd.OutOrStdout(), config.ResolveScale(w, h))
			return nil
		},
	}
}

// parseDimensions 解析 "1920x1080"
func parseDimensions(s string) (width, height float64, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid dimensions %q: expected WIDTHxHEIGHT", s)
	}
	width, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	return width, height, nil
}

func writeScale(out io.Writer, s config.ResolvedScale) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value float64
	}{
		{"baseSize", s.BaseSize},
		{"paddingBottom", s.PaddingBottom},
		{"marginTop", s.MarginTop},
		{"logoSize", s.LogoSize},
		{"taglinePaddingTop", s.TaglinePaddingTop},
		{"diagonalLineMax", s.DiagonalLineMax},
		{"letterSpacingMax", s.LetterSpacingMax},
		{"translateYOffset", s.TranslateYOffset},
		{"tagline.base", s.TaglineWidths.Base},
		{"tagline.dot", s.TaglineWidths.Dot},
		{"tagline.gap", s.TaglineWidths.Gap},
		{"tagline.ls", s.TaglineWidths.LS},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.3f\n", r.name, r.value)
	}
	tw.Flush()
}

func (c *cli) springCmd() *cobra.Command {
	var (
		profile string
		frames  int
	)
	cmd := &cobra.Command{
		Use:   "spring",
		Short: "Print a spring curve (lines, name, logo, tagline)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			spring, duration, err := springProfile(cfg, profile)
			if err != nil {
				return err
			}
			c.logger.Debug("spring", "profile", profile, "damping_ratio", spring.WithDefaults().DampingRatio())

			out := cmd.OutOrStdout()
			for f := 0; f <= frames; f++ {
				v := utils.Spring(utils.SpringParams{Frame: float64(f), FPS: cfg.FPS, Config: spring, DurationFrames: duration})
				fmt.Fprintf(out, "%d\t%.5f\n", f, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "name", "Spring profile: lines, name, logo, tagline")
	cmd.Flags().IntVar(&frames, "frames", 60, "Number of frames to print")
	return cmd
}

// springProfile 按图层名取弹簧参数（线条带生长时长）
func springProfile(cfg *config.IntroConfig, profile string) (utils.SpringConfig, float64, error) {
	switch profile {
	case "lines":
		return cfg.Lines.Spring, float64(config.SecondsToFrames(cfg.Lines.GrowSeconds, cfg.FPS)), nil
	case "name":
		return cfg.StudioName.Spring, 0, nil
	case "logo":
		return cfg.Logo.Spring, 0, nil
	case "tagline":
		return cfg.Tagline.Spring, 0, nil
	}
	return utils.SpringConfig{}, 0, fmt.Errorf("unknown spring profile %q (lines, name, logo, tagline)", profile)
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config.yaml]",
		Short: "Validate an intro timeline file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.configPath = args[0]
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			source := c.configPath
			if source == "" {
				source = "built-in"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d frames @ %d fps)\n", source, cfg.TotalFrames(), cfg.FPS)
			return nil
		},
	}
}

func (c *cli) settingsCmd() *cobra.Command {
	var skipIntro, fullscreen bool
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted site preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm := game.OpenSettingsManager(config.GdataAppName)
			if !sm.Persistent() {
				c.logger.Warn("settings storage unavailable, changes will not persist")
			}

			changed := false
			if cmd.Flags().Changed("skip-intro") {
				sm.SetSkipIntro(skipIntro)
				changed = true
			}
			if cmd.Flags().Changed("fullscreen") {
				sm.SetFullscreen(fullscreen)
				changed = true
			}
			if changed {
				if err := sm.Save(); err != nil {
					return fmt.Errorf("failed to save settings: %w", err)
				}
				c.logger.Info("settings saved")
			}

			s := sm.GetSettings()
			fmt.Fprintf(cmd.OutOrStdout(), "skipIntro: %t\nfullscreen: %t\n", s.SkipIntro, s.Fullscreen)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipIntro, "skip-intro", false, "Skip the intro on startup")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Start in fullscreen")
	return cmd
}

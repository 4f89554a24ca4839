package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/claralima1/Planner/client"
)

var serviceURL string
var debug bool
var noCache bool

const requestTimeout = 15 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studyctl",
		Short:         "studyctl manages planned study sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("STUDY_SERVICE_URL", "http://localhost:8080")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the study service")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Do not read or write the local list mirror")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newCategoriesCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	opts := []client.Option{client.WithDebugLogging(debug)}
	if !noCache {
		m, err := client.NewFileMirror()
		if err != nil {
			log.Warn().Err(err).Msg("local mirror unavailable; continuing without it")
		} else {
			opts = append(opts, client.WithMirror(m))
		}
	}
	return client.New(serviceURL, opts...)
}

func newListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all studies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			lst, err := c.ListStudies(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, lst)
			}
			if len(lst) == 0 {
				fmt.Fprintln(out, "Nenhum estudo cadastrado")
				return nil
			}
			var total, done float64
			for _, s := range lst {
				printStudyLine(out, s)
				total += s.Duration
				if s.Completed {
					done += s.Duration
				}
			}
			fmt.Fprintf(out, "%d estudos, %sh planejadas, %sh concluídas\n", len(lst), formatHours(total), formatHours(done))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			s, err := c.GetStudy(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
}

// studyFlags holds the form fields shared by add and update.
type studyFlags struct {
	title, description, category, priority string
	duration                               float64
	done                                   bool
}

func (f *studyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Study title")
	cmd.Flags().Float64Var(&f.duration, "duration", 0, "Duration in hours (0 < d <= 24)")
	cmd.Flags().BoolVar(&f.done, "done", false, "Mark as completed")
	cmd.Flags().StringVar(&f.description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&f.category, "category", "", "Category, e.g. "+strings.Join(client.SuggestedCategories[:3], ", "))
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority: baixa, media or alta")
}

func newAddCmd() *cobra.Command {
	var f studyFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a study",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.StudyInput{Title: f.title, Duration: f.duration, Completed: f.done}
			flags := cmd.Flags()
			if flags.Changed("description") {
				in.Description = &f.description
			}
			if flags.Changed("category") {
				in.Category = &f.category
			}
			if flags.Changed("priority") {
				p := client.Priority(f.priority)
				in.Priority = &p
			}
			if err := client.ValidateInput(in); err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			s, err := c.CreateStudy(ctx, in)
			if err != nil {
				log.Error().Err(err).Str("title", in.Title).Dur("elapsed", time.Since(start)).Msg("create study failed")
				return err
			}
			log.Debug().Int64("study_id", s.ID).Dur("elapsed", time.Since(start)).Msg("create study completed")
			fmt.Fprintf(cmd.OutOrStdout(), "Estudo criado: #%d %s\n", s.ID, s.Title)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var f studyFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the supplied fields of a study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := client.StudyPatch{ID: id}
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &f.title
			}
			if flags.Changed("duration") {
				p.Duration = &f.duration
			}
			if flags.Changed("done") {
				p.Completed = &f.done
			}
			if flags.Changed("description") {
				p.Description = &f.description
			}
			if flags.Changed("category") {
				p.Category = &f.category
			}
			if flags.Changed("priority") {
				prio := client.Priority(f.priority)
				p.Priority = &prio
			}
			if err := client.ValidatePatch(p); err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			s, err := c.UpdateStudy(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Estudo atualizado: #%d %s\n", s.ID, s.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := c.DeleteStudy(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print suggested categories, durations and priorities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Categorias:")
			for _, c := range client.SuggestedCategories {
				fmt.Fprintf(out, "  %s\n", c)
			}
			durations := make([]string, 0, len(client.SuggestedDurations))
			for _, d := range client.SuggestedDurations {
				durations = append(durations, formatHours(d)+"h")
			}
			fmt.Fprintf(out, "Durações: %s\n", strings.Join(durations, ", "))
			prios := make([]string, 0, len(client.Priorities))
			for _, p := range client.Priorities {
				prios = append(prios, string(p))
			}
			fmt.Fprintf(out, "Prioridades: %s\n", strings.Join(prios, ", "))
			return nil
		},
	}
}

func printStudyLine(w io.Writer, s client.Study) {
	mark := " "
	if s.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] #%d %s (%sh)", mark, s.ID, s.Title, formatHours(s.Duration))
	if s.Category != nil && *s.Category != "" {
		line += " · " + *s.Category
	}
	if s.Priority != nil {
		line += " · " + string(*s.Priority)
	}
	fmt.Fprintln(w, line)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid study id %q", s)
	}
	return id, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

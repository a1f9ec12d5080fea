// Package cli implements the usecase command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"usecase-assistant/internal/audit"
	"usecase-assistant/internal/platform/config"
	"usecase-assistant/internal/platform/logger"
	"usecase-assistant/internal/usecase"
	"usecase-assistant/internal/usecase/metrics"
	"usecase-assistant/internal/usecase/models"
	"usecase-assistant/internal/usecase/serializer"
	"usecase-assistant/internal/usecase/service"
	"usecase-assistant/internal/usecase/validation"
	dErrors "usecase-assistant/pkg/domain-errors"
	"usecase-assistant/pkg/requestcontext"
)

// ErrInvalid is returned by validate when the document breaks a rule. The
// findings have already been printed.
var ErrInvalid = errors.New("use case is invalid")

// app carries the collaborators built once flags and environment are known.
type app struct {
	cfg      config.Config
	stdout   io.Writer
	stderr   io.Writer
	codec    *serializer.Serializer
	svc      *usecase.Service
	journal  *audit.Publisher
	registry *prometheus.Registry
}

// Command is the root command together with the state its subcommands share.
type Command struct {
	*cobra.Command
	app *app
}

// NewRootCommand builds the command tree. cfg supplies defaults that flags
// may override.
func NewRootCommand(cfg config.Config) *Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "usecase",
		Short:         "Author and check Cockburn-style use cases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.StorageDir, "dir", cfg.StorageDir, "use case storage directory")
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		a.listCommand(),
		a.showCommand(),
		a.validateCommand(),
		a.importCommand(),
		a.deleteCommand(),
		a.auditCommand(),
	)
	return &Command{Command: root, app: a}
}

func (a *app) init(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()
	cmd.SetContext(requestcontext.WithInvocationID(cmd.Context(), uuid.NewString()))

	log, err := logger.New(a.cfg.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	a.codec, err = serializer.New()
	if err != nil {
		return err
	}

	deps := usecase.Deps{Logger: log}
	if a.cfg.MetricsTextfile != "" {
		a.registry = prometheus.NewRegistry()
		deps.Metrics = metrics.New(a.registry)
	}
	if a.cfg.AuditJournal != "" {
		journal, err := audit.NewJournalStore(a.cfg.AuditJournal)
		if err != nil {
			return err
		}
		a.journal = audit.NewPublisher(journal)
		deps.Audit = a.journal
	}

	a.svc, _, err = usecase.Open(a.cfg.StorageDir, a.codec, deps)
	return err
}

func (a *app) flushMetrics() error {
	if a.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(a.cfg.MetricsTextfile, a.registry)
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored use cases ordered by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ucs, err := a.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ucs) == 0 {
				fmt.Fprintln(a.stdout, "No use cases stored.")
				return nil
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tGOAL LEVEL\tPRIMARY ACTOR")
			for _, uc := range ucs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", uc.ID(), uc.Title(), uc.GoalLevel().DisplayName(), uc.PrimaryActor())
			}
			return tw.Flush()
		},
	}
}

func (a *app) showCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored use case as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encode, ok := map[string]func(*models.UseCase) ([]byte, error){
				"json": a.codec.Serialize,
				"yaml": a.codec.SerializeYAML,
			}[format]
			if !ok {
				return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown format %q (json, yaml)", format))
			}
			uc, err := a.svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := encode(uc)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}

// readDocument decodes a draft file. Files ending in .yaml or .yml are read
// as YAML, everything else as JSON.
func (a *app) readDocument(path string) (*models.UseCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return a.codec.DeserializeYAML(data)
	default:
		return a.codec.Deserialize(data)
	}
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a JSON or YAML use case document against the schema and the writing rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			result := a.svc.Validate(uc)
			if result.IsValid() {
				fmt.Fprintf(a.stdout, "%s: valid\n", args[0])
				return nil
			}
			printFindings(a.stdout, result)
			return ErrInvalid
		},
	}
}

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a use case document and add it to the store",
		Long: "Validate a use case document and add it to the store. A document " +
			"without an id is assigned a new one; an existing id is overwritten.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			created, err := a.svc.Create(cmd.Context(), uc)
			if err != nil {
				var verr *service.ValidationError
				if errors.As(err, &verr) {
					printFindings(a.stdout, verr.Result)
				}
				return err
			}
			fmt.Fprintf(a.stdout, "imported %s\n", created.ID())
			return nil
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored use case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return dErrors.New(dErrors.CodeInvalidInput, "refusing to delete without --yes")
			}
			if err := a.svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func (a *app) auditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "audit <id>",
		Short: "Show the audit journal entries for a use case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.journal == nil {
				return dErrors.New(dErrors.CodeInvalidInput, "no audit journal configured (set USECASE_AUDIT_JOURNAL)")
			}
			events, err := a.journal.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintf(a.stdout, "%s  %-16s %s\n", e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), e.Action, e.Title)
			}
			return nil
		},
	}
}

func printFindings(w io.Writer, result validation.Result) {
	for _, fe := range result.Errors() {
		fmt.Fprintf(w, "- [%s] %s\n", fe.Field, fe.Message)
		if fe.Example != "" {
			fmt.Fprintf(w, "    %s\n", strings.TrimPrefix(fe.Example, "Example: "))
		}
	}
}

// Execute runs the root command and maps failures to exit codes: 1 for
// invalid documents, 2 for bad input, 3 for missing records and 4 otherwise.
// Metrics are flushed whether or not the command succeeded.
func Execute(ctx context.Context, root *Command, stderr io.Writer) int {
	err := root.ExecuteContext(ctx)
	if flushErr := root.app.flushMetrics(); flushErr != nil {
		err = errors.Join(err, fmt.Errorf("write metrics textfile: %w", flushErr))
	}
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "error:", err)
	switch {
	case errors.Is(err, ErrInvalid), dErrors.HasCode(err, dErrors.CodeValidation):
		return 1
	case dErrors.HasCode(err, dErrors.CodeInvalidInput), serializer.KindOf(err) != "":
		return 2
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return 3
	default:
		return 4
	}
}

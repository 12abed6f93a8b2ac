package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	catalogapp "github.com/narwhalmedia/splice/internal/application/catalog"
	"github.com/narwhalmedia/splice/internal/container"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

func newMediaCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage the media catalog",
	}
	cmd.AddCommand(newMediaImportCommand(ctx))
	cmd.AddCommand(newMediaListCommand(ctx))
	cmd.AddCommand(newMediaRemoveCommand(ctx))
	return cmd
}

// withCatalog opens the catalog for the duration of fn
func (c *commandContext) withCatalog(cmd *cobra.Command, fn func(*catalogapp.Service) error) error {
	cfg, log, err := c.ensure()
	if err != nil {
		return err
	}
	svc, cleanup, err := container.InitializeCatalog(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cleanup()
	return fn(svc)
}

func newMediaImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Upload local files into the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(svc *catalogapp.Service) error {
				out := cmd.OutOrStdout()
				var failed int
				for _, path := range args {
					record, err := importFile(cmd, svc, path)
					if err != nil {
						failed++
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
						continue
					}
					fmt.Fprintf(out, "%s  %s  %s  %s\n", record.ID, record.Name, record.Duration, record.SizeLabel)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d files failed to import", failed, len(args))
				}
				return nil
			})
		},
	}
}

func importFile(cmd *cobra.Command, svc *catalogapp.Service, path string) (*catalog.MediaRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("is a directory")
	}
	mimeType, err := detectMIMEType(path)
	if err != nil {
		return nil, err
	}

	job := svc.Start(cmd.Context(), catalogapp.UploadRequest{
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Size:     info.Size(),
		Path:     path,
	})

	if isTerminal(cmd.ErrOrStderr()) {
		for pct := range job.Progress() {
			fmt.Fprintf(cmd.ErrOrStderr(), "\r%s %3d%%", job.Name(), pct)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	return job.Wait(cmd.Context())
}

// detectMIMEType uses the extension and falls back to sniffing the header
func detectMIMEType(path string) (string, error) {
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); mt != "" {
		if parsed, _, err := mime.ParseMediaType(mt); err == nil {
			return parsed, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	parsed, _, err := mime.ParseMediaType(http.DetectContentType(head[:n]))
	if err != nil {
		return "application/octet-stream", nil
	}
	return parsed, nil
}

func newMediaListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(svc *catalogapp.Service) error {
				records, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}
				return printMedia(cmd.OutOrStdout(), records, asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func printMedia(out io.Writer, records []*catalog.MediaRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No media in the catalog")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID.String(),
			r.Name,
			string(r.Type),
			r.Duration,
			r.SizeLabel,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"ID", "Name", "Type", "Duration", "Size", "Added"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}))
	return nil
}

func newMediaRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove records and their stored files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid media id %q", arg)
				}
				ids = append(ids, id)
			}
			return ctx.withCatalog(cmd, func(svc *catalogapp.Service) error {
				for _, id := range ids {
					if err := svc.Remove(cmd.Context(), id); err != nil {
						return fmt.Errorf("remove %s: %w", id, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
				}
				return nil
			})
		},
	}
}

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pokescout-backend/internal/app"
	"github.com/heartmarshall/pokescout-backend/internal/domain"
	"github.com/heartmarshall/pokescout-backend/internal/service/catalog"
)

type syncOptions struct {
	file    string
	migrate bool
	asJSON  bool
}

func newSyncCmd() *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:   "sync [name...]",
		Short: "Fetch and store Pokémon by name",
		Long: `Fetch and store Pokémon by name. Names come from the arguments and,
with --file, from a file with one name per line ('#' starts a comment).
Lists longer than the configured batch size are processed in batches.
A name repeated anywhere in the list is fetched once; later occurrences
are reported as already stored, or as failed when the first one failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append([]string(nil), args...)
			if opts.file != "" {
				fromFile, err := readNamesFile(opts.file)
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				return fmt.Errorf("no names given: pass names as arguments or use --file")
			}

			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if opts.migrate {
				if _, err := postgres.Migrate(ctx, e.pool, e.logger); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			svc := app.NewCatalogService(e.cfg, e.logger, e.pool)
			total, err := syncAll(ctx, svc, names)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), total, opts.asJSON)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read names from file, one per line")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply migrations before syncing")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	return cmd
}

type batchSyncer interface {
	MaxBatchSize() int
	Sync(ctx context.Context, names []string) (*catalog.SyncResult, error)
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeCreated
	outcomeExisting
)

// syncAll runs svc.Sync over names in chunks of the service batch size and
// merges the buckets in input order. Only the first occurrence of a lookup
// key is sent; later ones reuse its outcome, as within a single Sync call,
// so a name that failed in one chunk is not fetched again in the next.
func syncAll(ctx context.Context, svc batchSyncer, names []string) (*catalog.SyncResult, error) {
	firstOf := make(map[string]string, len(names))
	var pending []string
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		key, err := domain.SanitizeName(name)
		if err != nil {
			continue
		}
		if _, seen := firstOf[key]; seen {
			continue
		}
		firstOf[key] = name
		pending = append(pending, name)
	}

	outcomes := make(map[string]outcome, len(pending))
	size := max(svc.MaxBatchSize(), 1)
	for start := 0; start < len(pending); start += size {
		end := min(start+size, len(pending))
		res, err := svc.Sync(ctx, pending[start:end])
		if err != nil {
			return nil, fmt.Errorf("sync names %d-%d: %w", start+1, end, err)
		}
		for _, n := range res.Success {
			outcomes[n] = outcomeCreated
		}
		for _, n := range res.AlreadyExists {
			outcomes[n] = outcomeExisting
		}
		for _, n := range res.Failed {
			outcomes[n] = outcomeFailed
		}
	}

	total := &catalog.SyncResult{
		Success:       []string{},
		Failed:        []string{},
		AlreadyExists: []string{},
		Total:         len(names),
	}
	replayed := make(map[string]bool, len(firstOf))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		key, err := domain.SanitizeName(name)
		if err != nil {
			total.Failed = append(total.Failed, name)
			continue
		}

		o := outcomes[firstOf[key]]
		if replayed[key] && o != outcomeFailed {
			o = outcomeExisting
		}
		replayed[key] = true

		switch o {
		case outcomeCreated:
			total.Success = append(total.Success, name)
		case outcomeExisting:
			total.AlreadyExists = append(total.AlreadyExists, name)
		default:
			total.Failed = append(total.Failed, name)
		}
	}
	return total, nil
}

func readNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open names file: %w", err)
	}
	defer f.Close()

	names, err := parseNames(f)
	if err != nil {
		return nil, fmt.Errorf("read names file %s: %w", path, err)
	}
	return names, nil
}

// parseNames reads one name per line, skipping blank lines and '#' comments.
func parseNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, sc.Err()
}

func printResult(w io.Writer, res *catalog.SyncResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"success":        res.Success,
			"failed":         res.Failed,
			"already_exists": res.AlreadyExists,
			"total":          res.Total,
		})
	}

	fmt.Fprintf(w, "total: %d\n", res.Total)
	fmt.Fprintf(w, "created (%d): %s\n", len(res.Success), strings.Join(res.Success, ", "))
	fmt.Fprintf(w, "already stored (%d): %s\n", len(res.AlreadyExists), strings.Join(res.AlreadyExists, ", "))
	fmt.Fprintf(w, "failed (%d): %s\n", len(res.Failed), strings.Join(res.Failed, ", "))
	return nil
}

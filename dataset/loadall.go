package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LoadAll reads the CSV files at paths concurrently, at most limit at a
// time (limit <= 0 means no limit). The tables are returned in the order of
// paths. The first failure cancels the files not yet started and is
// returned.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*Table, error) {
	tables := make([]*Table, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := LoadCSVFile(path)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

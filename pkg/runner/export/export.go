package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/memoir/pkg/export"
	"tableflip.dev/memoir/pkg/store"
)

// Export writes the whole journal as a JSON document.
type Export struct {
	Out string

	Persistence store.Persistence
}

func (e *Export) Do(ctx context.Context) error {
	entries, err := e.Persistence.ListEntries(ctx)
	if err != nil {
		return err
	}

	path := e.Out
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = filepath.Join(wd, export.DefaultFilename(time.Now()))
	}

	if err := export.WriteFile(path, entries); err != nil {
		return err
	}

	c := color.New(color.Faint)
	fmt.Printf("exported %d entries\n", len(entries))
	_, _ = c.Println(path)
	return nil
}

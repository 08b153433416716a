package cliapilogs

import (
	"context"
	"sync"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
	"golang.org/x/sync/semaphore"
)

func init() {
	lib.Commands["apilogs-rm-all"] = apilogsRmAll
	lib.Args["apilogs-rm-all"] = apilogsRmAllArgs{}
}

type apilogsRmAllArgs struct {
	MaxConcurrency int  `arg:"-c,--max-concurrency" default:"16"`
	Preview        bool `arg:"-p,--preview"`
}

func (apilogsRmAllArgs) Description() string {
	return "\ndelete every log entry\n"
}

func deleteAll(ctx context.Context, store *apilogs.Store, ids []string, maxConcurrency int) error {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	sem := semaphore.NewWeighted(int64(maxConcurrency))
	var wg sync.WaitGroup
	var lock sync.Mutex
	var firstErr error
	for _, id := range ids {
		err := sem.Acquire(ctx, 1)
		if err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(1)
			err := lib.Retry(ctx, func() error {
				return store.Delete(ctx, id)
			})
			if err != nil {
				lib.Logger.Println("error:", id, err)
				lock.Lock()
				if firstErr == nil {
					firstErr = err
				}
				lock.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return firstErr
}

func apilogsRmAll() {
	var args apilogsRmAllArgs
	arg.MustParse(&args)
	ctx := context.Background()
	h := apilogs.NewHandlersFromEnv()
	entries, err := h.Store.All(ctx)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	var ids []string
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	if args.Preview {
		lib.Logger.Println("preview: would delete", humanize.Comma(int64(len(ids))), "entries from", h.Store.Table())
		return
	}
	err = deleteAll(ctx, h.Store, ids, args.MaxConcurrency)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	lib.Logger.Println("deleted", humanize.Comma(int64(len(ids))), "entries from", h.Store.Table())
}

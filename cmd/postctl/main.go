// postctl dumps the stored post records as a table for command line
// inspection: lifecycle state, delivery attempts and the display line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"post-notify/domain/post"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	prefix := flag.String("prefix", "post:", "Prefix to scan")
	colours := flag.Bool("colours", true, "Colorize lifecycle states")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Page", "State", "Attempts", "Created", "Sent", "Seen", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var p post.Post
				if err := json.Unmarshal(v, &p); err != nil {
					// Keep scanning instead of aborting the whole dump.
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				detail := p.Message
				if p.Delivery.LastError != "" {
					detail = p.Delivery.LastError
				}

				table.Append([]string{
					strconv.FormatInt(p.ID, 10),
					strconv.FormatInt(p.PageID, 10),
					renderState(p.State(), *colours),
					strconv.Itoa(p.Delivery.Attempts),
					p.CreatedAt.Format(post.TimeLayout),
					formatOptional(p.NotificationSentAt),
					formatOptional(p.SeenAt),
					detail,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func renderState(state post.State, colours bool) string {
	if !colours {
		return string(state)
	}
	switch state {
	case post.StateAcknowledged:
		return color.Green.Render(string(state))
	case post.StateDispatched:
		return color.Cyan.Render(string(state))
	case post.StateFailed:
		return color.Red.Render(string(state))
	default:
		return color.Yellow.Render(string(state))
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(post.TimeLayout)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}

package dispatcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nmattia/docindex/internal/docstore"
	"github.com/nmattia/docindex/internal/protoerr"
	"github.com/nmattia/docindex/internal/scan"
)

func (d *Dispatcher) handleAdd(args []Arg) ([]replyPart, error) {
	doc := docstore.Document{
		Title:   args[0].Str,
		Authors: args[1].Str,
		Year:    args[2].U32,
		Path:    args[3].Str,
	}

	key, err := d.store.Add(doc)
	if err != nil {
		return nil, err
	}

	return []replyPart{strPart(fmt.Sprintf("Document %d indexed", key))}, nil
}

// handleCheck replies with four separate string TLVs — title, authors,
// year, path — rather than one joined string (spec.md §4.6, §8 scenario 2).
func (d *Dispatcher) handleCheck(args []Arg) ([]replyPart, error) {
	key := int32(args[0].U32)

	doc, err := d.store.Get(key)
	if err != nil {
		if errors.Is(err, protoerr.ErrNotFound) {
			return []replyPart{strPart("Document not found")}, nil
		}

		return nil, err
	}

	return []replyPart{
		strPart(fmt.Sprintf("Title: %s", doc.Title)),
		strPart(fmt.Sprintf("Authors: %s", doc.Authors)),
		strPart(fmt.Sprintf("Year: %d", doc.Year)),
		strPart(fmt.Sprintf("Path: %s", doc.Path)),
	}, nil
}

func (d *Dispatcher) handleDelete(args []Arg) ([]replyPart, error) {
	key := int32(args[0].U32)

	if err := d.store.Delete(key); err != nil {
		if errors.Is(err, protoerr.ErrNotFound) {
			return []replyPart{strPart("Document not found")}, nil
		}

		return nil, err
	}

	return []replyPart{strPart(fmt.Sprintf("Document %d deleted", key))}, nil
}

// handleList counts the lines of the given document that contain keyword
// as a substring, replying with a single u32 TLV (spec.md §4.4/§4.6, §8
// scenario 4). A key with no live document counts as zero matches rather
// than failing the request.
func (d *Dispatcher) handleList(args []Arg) ([]replyPart, error) {
	key := int(args[0].U32)
	keyword := args[1].Str

	rc, err := d.openDocument(key)
	if err != nil {
		if errors.Is(err, protoerr.ErrNotFound) {
			return []replyPart{u32Part(0)}, nil
		}

		return nil, err
	}
	defer rc.Close()

	count, err := scan.CountMatching(rc, keyword, false)
	if err != nil {
		return nil, err
	}

	return []replyPart{u32Part(uint32(count))}, nil
}

func (d *Dispatcher) handleSearch(args []Arg) ([]replyPart, error) {
	term := args[0].Str

	requested := 0
	if len(args) > 1 {
		requested = int(args[1].U32)
	}

	total, err := d.store.Total()
	if err != nil {
		return nil, err
	}

	bmp, err := scan.ParallelContains(total, term, requested, d.cfg.WorkerCapMultiplier, d.openDocument)
	if err != nil {
		return nil, err
	}

	hits := bmp.Keys(total)
	keys := make([]int32, len(hits))
	for i, k := range hits {
		keys[i] = int32(k)
	}

	return []replyPart{strPart(formatKeyList(keys))}, nil
}

func (d *Dispatcher) openDocument(key int) (io.ReadCloser, error) {
	doc, err := d.store.Get(int32(key))
	if err != nil {
		return nil, err
	}

	return os.Open(filepath.Join(d.cfg.DocRoot, doc.Path))
}

func formatKeyList(keys []int32) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(int(k))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

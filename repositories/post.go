//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=../mocks/mock_post_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"post-notify/domain/post"
	"post-notify/errors"
)

type IPostRepository interface {
	Save(p post.Post) error
	FindByID(id int64) (post.Post, bool, error)
	Update(id int64, mutate func(*post.Post) error) (post.Post, error)
	ListAll() ([]post.Post, error)
}

type PostRepository struct {
	db  *badger.DB
	log *slog.Logger

	// One mutex per record id. All read-modify-write cycles on a given post
	// are serialized here, which is what keeps the monotonic timestamp
	// invariants intact under concurrent dispatch-completion and seen
	// postbacks.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewPostRepository(db *badger.DB, log *slog.Logger) *PostRepository {
	return &PostRepository{db: db, log: log, locks: make(map[int64]*sync.Mutex)}
}

// PostKey formats the badger key for a record. The 19-digit zero padding
// keeps keys in numeric order under lexicographical prefix scans.
func PostKey(id int64) []byte {
	return []byte(fmt.Sprintf("post:%019d", id))
}

const postPrefix = "post:"

func (r *PostRepository) lockFor(id int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Save upserts a record by id.
func (r *PostRepository) Save(p post.Post) error {
	l := r.lockFor(p.ID)
	l.Lock()
	defer l.Unlock()

	bytes, err := json.Marshal(p)
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(PostKey(p.ID), bytes)
	})
	if err != nil {
		return err
	}
	r.log.Debug("post saved", "id", p.ID, "page", p.PageID)
	return nil
}

func (r *PostRepository) FindByID(id int64) (post.Post, bool, error) {
	var p post.Post
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(PostKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &p)
		})
	})
	if err != nil {
		return post.Post{}, false, err
	}
	return p, found, nil
}

// Update runs a serialized read-modify-write cycle on one record. The
// mutation error propagates unchanged and aborts the write; a missing
// record yields ErrNotFound.
func (r *PostRepository) Update(id int64, mutate func(*post.Post) error) (post.Post, error) {
	l := r.lockFor(id)
	l.Lock()
	defer l.Unlock()

	var p post.Post
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(PostKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrNotFound
			}
			return err
		}
		if err := item.Value(func(value []byte) error {
			return json.Unmarshal(value, &p)
		}); err != nil {
			return err
		}
		if err := mutate(&p); err != nil {
			return err
		}
		bytes, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return txn.Set(PostKey(id), bytes)
	})
	if err != nil {
		return post.Post{}, err
	}
	return p, nil
}

// ListAll scans every record under the post prefix, in id order.
func (r *PostRepository) ListAll() ([]post.Post, error) {
	var posts []post.Post
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(postPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var p post.Post
				if err := json.Unmarshal(value, &p); err != nil {
					return err
				}
				posts = append(posts, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return posts, err
}

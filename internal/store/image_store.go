package store

import (
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

// ImageStore keeps image metadata only. The bytes live in a photostore.
type ImageStore struct {
	items *collection[domain.ImageRecord]
	opts  options
}

func newImageStore(o options) *ImageStore {
	return &ImageStore{items: newCollection[domain.ImageRecord](), opts: o}
}

func (s *ImageStore) Add(img domain.NewImage) domain.ImageRecord {
	createdAt := s.opts.now()
	return s.items.add(s.opts.newID, func(id string) domain.ImageRecord {
		return domain.ImageRecord{
			ID:           id,
			Date:         img.Date,
			Filename:     img.Filename,
			OriginalName: img.OriginalName,
			Description:  img.Description,
			Category:     domain.ParseImageCategory(img.Category),
			CreatedAt:    createdAt,
		}
	})
}

// List returns every image, newest date first.
func (s *ImageStore) List() []domain.ImageRecord {
	return s.items.snapshot(nil, func(a, b domain.ImageRecord) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return byCreation(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// ListByDate returns the images whose date equals date exactly, in upload
// order.
func (s *ImageStore) ListByDate(date string) []domain.ImageRecord {
	return s.items.snapshot(
		func(img domain.ImageRecord) bool { return img.Date == date },
		func(a, b domain.ImageRecord) int {
			return byCreation(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		},
	)
}

func (s *ImageStore) Get(id string) (domain.ImageRecord, bool) {
	return s.items.get(id)
}

func (s *ImageStore) Delete(id string) bool {
	return s.items.remove(id)
}

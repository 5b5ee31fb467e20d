package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// IndexKind is the type of a declared index.
type IndexKind string

const (
	// IndexUnique is a uniqueness constraint.
	IndexUnique IndexKind = "unique"
	// IndexFullText is a combined searchable index.
	IndexFullText IndexKind = "fulltext"
)

// Record field names used in declarations and filters.
const (
	FieldQuestion = "question"
	FieldAnswer   = "answer"
	FieldTags     = "tags"
)

// DefaultCollection is the name of the collection (table) holding stored records.
const DefaultCollection = "teach_qa"

// IndexDecl declares one index.
type IndexDecl struct {
	// Name identifies the index in the store.
	Name string `json:"name"`
	// Kind selects the index type.
	Kind IndexKind `json:"kind"`
	// Fields lists the indexed fields in order.
	Fields []string `json:"fields"`
}

// SchemaDecl is the set of constructs the store must maintain for a collection.
type SchemaDecl struct {
	// Collection is the table or collection name.
	Collection string `json:"collection"`
	// Indexes lists the declared indexes.
	Indexes []IndexDecl `json:"indexes"`
}

// DefaultSchema declares the natural-key uniqueness constraint and the search index.
func DefaultSchema() SchemaDecl {
	return SchemaDecl{
		Collection: DefaultCollection,
		Indexes: []IndexDecl{
			{
				Name:   "uq_teach_qa_question",
				Kind:   IndexUnique,
				Fields: []string{FieldQuestion},
			},
			{
				Name:   "ft_teach_qa_search",
				Kind:   IndexFullText,
				Fields: []string{FieldQuestion, FieldAnswer, FieldTags},
			},
		},
	}
}

// Validate checks the declaration is well-formed.
func (d SchemaDecl) Validate() error {
	if d.Collection == "" {
		return errors.New("schema declaration has no collection")
	}
	seen := make(map[string]struct{}, len(d.Indexes))
	for _, idx := range d.Indexes {
		if idx.Name == "" {
			return fmt.Errorf("index on %v has no name", idx.Fields)
		}
		if _, dup := seen[idx.Name]; dup {
			return fmt.Errorf("index %s declared twice", idx.Name)
		}
		seen[idx.Name] = struct{}{}
		if len(idx.Fields) == 0 {
			return fmt.Errorf("index %s has no fields", idx.Name)
		}
		if idx.Kind != IndexUnique && idx.Kind != IndexFullText {
			return fmt.Errorf("index %s has unknown kind %q", idx.Name, idx.Kind)
		}
	}
	return nil
}

// EnsureSchema establishes decl on the store. It is idempotent and must run before writes.
// Connectivity failures are reported as ErrConnection and cancellation as the context's
// error; everything else that prevents the
// constraints from being established is reported as ErrSchemaConflict.
func EnsureSchema(ctx context.Context, gw Gateway, decl SchemaDecl) error {
	if err := decl.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaConflict, err)
	}

	if err := gw.EnsureIndexes(ctx, decl); err != nil {
		if errors.Is(err, ErrSchemaConflict) || errors.Is(err, ErrConnection) || isContextErr(err) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSchemaConflict, err)
	}
	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

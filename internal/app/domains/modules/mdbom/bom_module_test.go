package mdbom

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/pkg/errorx"
)

// fakePartRepo 内存零件仓储
type fakePartRepo struct {
	parts       map[string]*etpart.Part
	edges       []*etpart.BOMEdge
	childrenErr error
	calls       int
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: make(map[string]*etpart.Part)}
}

func (f *fakePartRepo) part(id, hsCode, origin string) *fakePartRepo {
	f.parts[id] = &etpart.Part{ID: id, Type: typeOf(id), HSCode: hsCode, Origin: origin}
	return f
}

func (f *fakePartRepo) edge(parent, child string, qty int64) *fakePartRepo {
	f.edges = append(f.edges, &etpart.BOMEdge{ParentID: parent, ChildID: child, Quantity: decimal.NewFromInt(qty)})
	return f
}

func typeOf(id string) string {
	if id == "FG" {
		return "FERT"
	}
	return "ROH"
}

func (f *fakePartRepo) GetByID(_ context.Context, partID string) (*etpart.Part, error) {
	p, ok := f.parts[partID]
	if !ok {
		return nil, errorx.ErrPartNotFound
	}
	return p, nil
}

func (f *fakePartRepo) GetChildren(_ context.Context, parentID string) ([]*etpart.Child, error) {
	f.calls++
	if f.childrenErr != nil {
		return nil, f.childrenErr
	}
	var children []*etpart.Child
	for _, e := range f.edges {
		if e.ParentID != parentID {
			continue
		}
		p, ok := f.parts[e.ChildID]
		if !ok {
			continue
		}
		children = append(children, &etpart.Child{Part: p, Quantity: e.Quantity})
	}
	return children, nil
}

func (f *fakePartRepo) List(context.Context, string) ([]*etpart.Part, error) {
	return nil, nil
}

func (f *fakePartRepo) Create(context.Context, *etpart.Part) error {
	return nil
}

func (f *fakePartRepo) CreateEdge(context.Context, *etpart.BOMEdge) error {
	return nil
}

func (f *fakePartRepo) ListEdges(context.Context) ([]*etpart.BOMEdge, error) {
	return f.edges, nil
}

func (f *fakePartRepo) Clear(context.Context) error {
	return nil
}

func TestExpand_PreOrderDepthAndParent(t *testing.T) {
	repo := newFakePartRepo().
		part("FG", "850760", "KR").
		part("MOD", "850790", "KR").
		part("CELL", "850790", "CN").
		part("CASE", "760429", "KR").
		part("BMS", "853710", "DE").
		edge("FG", "MOD", 4).
		edge("MOD", "CELL", 12).
		edge("MOD", "CASE", 1).
		edge("FG", "BMS", 1)

	got, err := NewBOMModule(repo, 0).Expand(context.Background(), "FG")
	require.NoError(t, err)
	require.Len(t, got, 4)

	type rec struct {
		id, parent string
		depth      int
	}
	want := []rec{
		{"MOD", "FG", 1},
		{"CELL", "MOD", 2},
		{"CASE", "MOD", 2},
		{"BMS", "FG", 1},
	}
	for i, w := range want {
		assert.Equal(t, w.id, got[i].PartID, "index %d", i)
		assert.Equal(t, w.parent, got[i].ParentID, "index %d", i)
		assert.Equal(t, w.depth, got[i].Depth, "index %d", i)
	}
	assert.True(t, got[1].Quantity.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "CN", got[1].Origin)
	assert.Equal(t, "850790", got[1].HSCode)
}

func TestExpand_UnknownRootIsEmpty(t *testing.T) {
	got, err := NewBOMModule(newFakePartRepo(), 0).Expand(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpand_SharedComponentAppearsPerPosition(t *testing.T) {
	repo := newFakePartRepo().
		part("FG", "850760", "KR").
		part("A", "111111", "KR").
		part("B", "222222", "KR").
		part("SCREW", "731815", "CN").
		edge("FG", "A", 1).
		edge("FG", "B", 1).
		edge("A", "SCREW", 8).
		edge("B", "SCREW", 20)

	got, err := NewBOMModule(repo, 0).Expand(context.Background(), "FG")
	require.NoError(t, err)
	require.Len(t, got, 4)

	var screws []string
	for _, c := range got {
		if c.PartID == "SCREW" {
			screws = append(screws, c.ParentID)
		}
	}
	assert.Equal(t, []string{"A", "B"}, screws)
}

func TestExpand_Cycle(t *testing.T) {
	tests := []struct {
		name  string
		repo  *fakePartRepo
		limit int
	}{
		{
			name: "two-node cycle",
			repo: newFakePartRepo().
				part("FG", "850760", "KR").
				part("A", "111111", "CN").
				edge("FG", "A", 1).
				edge("A", "FG", 1),
		},
		{
			name: "three-node cycle below root",
			repo: newFakePartRepo().
				part("FG", "850760", "KR").
				part("A", "111111", "CN").
				part("B", "222222", "CN").
				part("C", "333333", "CN").
				edge("FG", "A", 1).
				edge("A", "B", 1).
				edge("B", "C", 1).
				edge("C", "A", 1),
		},
		{
			name: "depth limit",
			repo: newFakePartRepo().
				part("FG", "850760", "KR").
				part("A", "111111", "CN").
				part("B", "222222", "CN").
				part("C", "333333", "CN").
				edge("FG", "A", 1).
				edge("A", "B", 1).
				edge("B", "C", 1),
			limit: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBOMModule(tt.repo, tt.limit).Expand(context.Background(), "FG")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errorx.ErrCyclicBOM))

			var ce *errorx.CycleError
			require.True(t, errors.As(err, &ce))
			assert.NotEmpty(t, ce.Path)
			assert.Equal(t, tt.limit, ce.MaxDepth)
		})
	}
}

func TestExpand_LookupFailure(t *testing.T) {
	repo := newFakePartRepo()
	repo.childrenErr = errors.New("connection reset")

	_, err := NewBOMModule(repo, 0).Expand(context.Background(), "FG")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errorx.ErrLookupFailed))
}

func TestTree(t *testing.T) {
	repo := newFakePartRepo().
		part("FG", "850760", "KR").
		part("MOD", "850790", "KR").
		part("CELL", "850790", "CN").
		part("BMS", "853710", "DE").
		edge("FG", "MOD", 4).
		edge("MOD", "CELL", 12).
		edge("FG", "BMS", 1)

	root, err := NewBOMModule(repo, 0).Tree(context.Background(), "FG")
	require.NoError(t, err)

	assert.Equal(t, "FG", root.PartID)
	assert.Equal(t, 0, root.Depth)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "MOD", root.Children[0].PartID)
	assert.Equal(t, "BMS", root.Children[1].PartID)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "CELL", root.Children[0].Children[0].PartID)
	assert.Equal(t, 2, root.Children[0].Children[0].Depth)
}

func TestTree_UnknownRoot(t *testing.T) {
	_, err := NewBOMModule(newFakePartRepo(), 0).Tree(context.Background(), "NOPE")
	assert.ErrorIs(t, err, errorx.ErrPartNotFound)
}

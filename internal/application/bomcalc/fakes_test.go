package bomcalc_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de lectura, para ejercitar el motor de
// cálculo sin base de datos.

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, category entity.ProductCategory, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if category != "" && p.Category != category {
			continue
		}
		if onlyActive && !p.IsActive {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

type fakeBOMRepo struct {
	boms     map[string]*entity.BOM
	lines    map[string][]*entity.BOMLine // por BOMID, en orden de secuencia
	versions map[string][]*entity.BOMVersion
}

func newFakeBOMRepo(boms ...*entity.BOM) *fakeBOMRepo {
	m := make(map[string]*entity.BOM)
	for _, b := range boms {
		m[b.ID] = b
	}
	return &fakeBOMRepo{
		boms:     m,
		lines:    make(map[string][]*entity.BOMLine),
		versions: make(map[string][]*entity.BOMVersion),
	}
}

func (r *fakeBOMRepo) addLines(bomID string, lines ...*entity.BOMLine) {
	r.lines[bomID] = append(r.lines[bomID], lines...)
}

func (r *fakeBOMRepo) Create(_ context.Context, b *entity.BOM) error {
	r.boms[b.ID] = b
	return nil
}

func (r *fakeBOMRepo) GetByID(_ context.Context, id string) (*entity.BOM, error) {
	return r.boms[id], nil
}

func (r *fakeBOMRepo) GetActiveByProduct(_ context.Context, productID string) (*entity.BOM, error) {
	for _, b := range r.boms {
		if b.ProductID == productID && b.Status == entity.BOMStatusActive {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBOMRepo) Update(_ context.Context, b *entity.BOM) error {
	r.boms[b.ID] = b
	return nil
}

func (r *fakeBOMRepo) SetStatus(_ context.Context, id string, status entity.BOMStatus) error {
	if b, ok := r.boms[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBOMRepo) SupersedeSiblings(_ context.Context, productID, exceptBOMID string) error {
	for _, b := range r.boms {
		if b.ProductID == productID && b.ID != exceptBOMID && b.Status == entity.BOMStatusActive {
			b.Status = entity.BOMStatusSuperseded
		}
	}
	return nil
}

func (r *fakeBOMRepo) List(_ context.Context, productID string, onlyActive bool, limit, offset int) ([]*entity.BOM, error) {
	var list []*entity.BOM
	for _, b := range r.boms {
		if productID != "" && b.ProductID != productID {
			continue
		}
		if onlyActive && b.Status != entity.BOMStatusActive {
			continue
		}
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeBOMRepo) GetLines(_ context.Context, bomID string) ([]*entity.BOMLine, error) {
	return r.lines[bomID], nil
}

func (r *fakeBOMRepo) CreateLine(_ context.Context, line *entity.BOMLine) error {
	r.lines[line.BOMID] = append(r.lines[line.BOMID], line)
	return nil
}

func (r *fakeBOMRepo) UpdateLine(_ context.Context, line *entity.BOMLine) error {
	for i, l := range r.lines[line.BOMID] {
		if l.ID == line.ID {
			r.lines[line.BOMID][i] = line
		}
	}
	return nil
}

func (r *fakeBOMRepo) DeleteLine(_ context.Context, lineID string) error {
	for bomID, lines := range r.lines {
		for i, l := range lines {
			if l.ID == lineID {
				r.lines[bomID] = append(lines[:i], lines[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *fakeBOMRepo) DeleteLines(_ context.Context, bomID string) error {
	delete(r.lines, bomID)
	return nil
}

func (r *fakeBOMRepo) SubAssemblyLinks(_ context.Context, bomID string) ([]repository.SubAssemblyLink, error) {
	var links []repository.SubAssemblyLink
	for _, l := range r.lines[bomID] {
		if l.IsSubAssembly {
			links = append(links, repository.SubAssemblyLink{BOMID: bomID, SubAssemblyBOMID: l.SubAssemblyBOMID})
		}
	}
	return links, nil
}

func (r *fakeBOMRepo) CreateVersion(_ context.Context, v *entity.BOMVersion) error {
	r.versions[v.BOMID] = append(r.versions[v.BOMID], v)
	return nil
}

func (r *fakeBOMRepo) ListVersions(_ context.Context, bomID string) ([]*entity.BOMVersion, error) {
	return r.versions[bomID], nil
}

type fakeInventoryRepo struct {
	records []*entity.InventoryRecord
}

func (r *fakeInventoryRepo) ListByProduct(_ context.Context, productID, locationID string) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for _, rec := range r.records {
		if rec.ProductID != productID {
			continue
		}
		if locationID != "" && rec.LocationID != locationID {
			continue
		}
		list = append(list, rec)
	}
	return list, nil
}

func (r *fakeInventoryRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for _, rec := range r.records {
		if rec.LocationID == locationID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (r *fakeInventoryRepo) Upsert(_ context.Context, record *entity.InventoryRecord) error {
	for i, rec := range r.records {
		if rec.ProductID == record.ProductID && rec.LocationID == record.LocationID {
			r.records[i] = record
			return nil
		}
	}
	r.records = append(r.records, record)
	return nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo(locations ...*entity.Location) *fakeLocationRepo {
	m := make(map[string]*entity.Location)
	for _, l := range locations {
		m[l.ID] = l
	}
	return &fakeLocationRepo{locations: m}
}

func (r *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.locations[l.ID] = l
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.locations[id], nil
}

func (r *fakeLocationRepo) List(_ context.Context, onlyActive bool) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, l := range r.locations {
		if onlyActive && !l.IsActive {
			continue
		}
		list = append(list, l)
	}
	return list, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/manufactura-api/internal/domain"
	"github.com/tu-usuario/manufactura-api/internal/domain/entity"
	"github.com/tu-usuario/manufactura-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL (usable con pool o tx).
// El índice parcial boms_one_active_per_product (product_id WHERE status='ACTIVE' AND NOT is_template)
// respalda en la base el invariante de un solo BOM activo por producto.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de persistencia para BOMs. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

const bomColumns = `id, product_id, batch_size, version, status, is_template, template_name, effective_date, notes, created_by, created_at, updated_at`

// Create persiste la cabecera de un BOM.
func (r *BOMRepo) Create(ctx context.Context, bom *entity.BOM) error {
	query := `
		INSERT INTO boms (` + bomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		bom.ID, bom.ProductID, bom.BatchSize, bom.Version, string(bom.Status),
		bom.IsTemplate, bom.TemplateName, bom.EffectiveDate, bom.Notes,
		bom.CreatedBy, bom.CreatedAt, bom.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert bom: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un BOM por ID.
func (r *BOMRepo) GetByID(ctx context.Context, id string) (*entity.BOM, error) {
	query := `SELECT ` + bomColumns + ` FROM boms WHERE id = $1`
	return scanBOM(r.q.QueryRow(ctx, query, id), "get bom")
}

// GetActiveByProduct obtiene el BOM activo (no template) del producto.
func (r *BOMRepo) GetActiveByProduct(ctx context.Context, productID string) (*entity.BOM, error) {
	query := `
		SELECT ` + bomColumns + `
		FROM boms WHERE product_id = $1 AND status = 'ACTIVE' AND NOT is_template`
	return scanBOM(r.q.QueryRow(ctx, query, productID), "get active bom")
}

// Update actualiza la cabecera de un BOM.
func (r *BOMRepo) Update(ctx context.Context, bom *entity.BOM) error {
	query := `
		UPDATE boms SET batch_size = $2, version = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		bom.ID, bom.BatchSize, bom.Version, string(bom.Status), bom.Notes, bom.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bom: %w", err)
	}
	return nil
}

// SetStatus cambia solo el estado del BOM.
func (r *BOMRepo) SetStatus(ctx context.Context, id string, status entity.BOMStatus) error {
	_, err := r.q.Exec(ctx,
		`UPDATE boms SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("set bom status: %w", err)
	}
	return nil
}

// SupersedeSiblings pasa a SUPERSEDED todos los BOMs activos del producto excepto el indicado.
func (r *BOMRepo) SupersedeSiblings(ctx context.Context, productID, exceptBOMID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE boms SET status = 'SUPERSEDED', updated_at = now()
		 WHERE product_id = $1 AND id <> $2 AND status = 'ACTIVE'`,
		productID, exceptBOMID,
	)
	if err != nil {
		return fmt.Errorf("supersede boms: %w", err)
	}
	return nil
}

// List lista BOMs con filtros opcionales, paginado.
func (r *BOMRepo) List(ctx context.Context, productID string, onlyActive bool, limit, offset int) ([]*entity.BOM, error) {
	query := `
		SELECT ` + bomColumns + `
		FROM boms
		WHERE ($1 = '' OR product_id = $1)
		  AND (NOT $2 OR status = 'ACTIVE')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productID, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()

	var boms []*entity.BOM
	for rows.Next() {
		bom, err := scanBOMRow(rows)
		if err != nil {
			return nil, err
		}
		boms = append(boms, bom)
	}
	return boms, rows.Err()
}

const lineColumns = `id, bom_id, material_id, quantity_per_batch, unit, scrap_percentage, unit_cost, sequence_number, is_sub_assembly, sub_assembly_bom_id, created_at, updated_at`

// GetLines devuelve las líneas del BOM en orden de secuencia.
func (r *BOMRepo) GetLines(ctx context.Context, bomID string) ([]*entity.BOMLine, error) {
	query := `SELECT ` + lineColumns + ` FROM bom_lines WHERE bom_id = $1 ORDER BY sequence_number`
	rows, err := r.q.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("get bom lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(
			&l.ID, &l.BOMID, &l.MaterialID, &l.QuantityPerBatch, &l.Unit,
			&l.ScrapPercentage, &l.UnitCost, &l.SequenceNumber,
			&l.IsSubAssembly, &l.SubAssemblyBOMID, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// CreateLine persiste una línea de material.
func (r *BOMRepo) CreateLine(ctx context.Context, line *entity.BOMLine) error {
	query := `
		INSERT INTO bom_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.BOMID, line.MaterialID, line.QuantityPerBatch, line.Unit,
		line.ScrapPercentage, line.UnitCost, line.SequenceNumber,
		line.IsSubAssembly, line.SubAssemblyBOMID, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom line: %w", err)
	}
	return nil
}

// UpdateLine actualiza una línea existente.
func (r *BOMRepo) UpdateLine(ctx context.Context, line *entity.BOMLine) error {
	query := `
		UPDATE bom_lines SET quantity_per_batch = $2, unit = $3, scrap_percentage = $4,
			unit_cost = $5, sequence_number = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.QuantityPerBatch, line.Unit, line.ScrapPercentage,
		line.UnitCost, line.SequenceNumber, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bom line: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea por ID.
func (r *BOMRepo) DeleteLine(ctx context.Context, lineID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM bom_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete bom line: %w", err)
	}
	return nil
}

// DeleteLines elimina todas las líneas del BOM (usado al reemplazar materiales).
func (r *BOMRepo) DeleteLines(ctx context.Context, bomID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM bom_lines WHERE bom_id = $1`, bomID)
	if err != nil {
		return fmt.Errorf("delete bom lines: %w", err)
	}
	return nil
}

// SubAssemblyLinks devuelve las aristas sub-ensamble salientes de un BOM.
func (r *BOMRepo) SubAssemblyLinks(ctx context.Context, bomID string) ([]repository.SubAssemblyLink, error) {
	query := `
		SELECT bom_id, sub_assembly_bom_id FROM bom_lines
		WHERE bom_id = $1 AND is_sub_assembly`
	rows, err := r.q.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("get sub-assembly links: %w", err)
	}
	defer rows.Close()

	var links []repository.SubAssemblyLink
	for rows.Next() {
		var link repository.SubAssemblyLink
		if err := rows.Scan(&link.BOMID, &link.SubAssemblyBOMID); err != nil {
			return nil, fmt.Errorf("scan sub-assembly link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// CreateVersion persiste un snapshot inmutable del BOM.
func (r *BOMRepo) CreateVersion(ctx context.Context, version *entity.BOMVersion) error {
	query := `
		INSERT INTO bom_versions (id, bom_id, version, effective_date, notes, snapshot, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		version.ID, version.BOMID, version.Version, version.EffectiveDate,
		version.Notes, version.Snapshot, version.CreatedBy, version.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bom version: %w", err)
	}
	return nil
}

// ListVersions devuelve el historial de snapshots en orden cronológico.
func (r *BOMRepo) ListVersions(ctx context.Context, bomID string) ([]*entity.BOMVersion, error) {
	query := `
		SELECT id, bom_id, version, effective_date, notes, snapshot, created_by, created_at
		FROM bom_versions WHERE bom_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom versions: %w", err)
	}
	defer rows.Close()

	var versions []*entity.BOMVersion
	for rows.Next() {
		var v entity.BOMVersion
		if err := rows.Scan(&v.ID, &v.BOMID, &v.Version, &v.EffectiveDate, &v.Notes, &v.Snapshot, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom version: %w", err)
		}
		versions = append(versions, &v)
	}
	return versions, rows.Err()
}

func scanBOM(row pgx.Row, op string) (*entity.BOM, error) {
	var b entity.BOM
	var status string
	err := row.Scan(
		&b.ID, &b.ProductID, &b.BatchSize, &b.Version, &status,
		&b.IsTemplate, &b.TemplateName, &b.EffectiveDate, &b.Notes,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.Status = entity.BOMStatus(status)
	return &b, nil
}

func scanBOMRow(rows pgx.Rows) (*entity.BOM, error) {
	var b entity.BOM
	var status string
	if err := rows.Scan(
		&b.ID, &b.ProductID, &b.BatchSize, &b.Version, &status,
		&b.IsTemplate, &b.TemplateName, &b.EffectiveDate, &b.Notes,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan bom: %w", err)
	}
	b.Status = entity.BOMStatus(status)
	return &b, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store - реляционная альтернатива MongoDB. id - текстовые UUID.
type Store struct {
	Owners     *OwnerRepository
	Properties *PropertyRepository
	Images     *PropertyImageRepository
	Traces     *PropertyTraceRepository
}

func NewStore(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &Store{
		Owners:     &OwnerRepository{pool: pool},
		Properties: &PropertyRepository{pool: pool},
		Images:     &PropertyImageRepository{pool: pool},
		Traces:     &PropertyTraceRepository{pool: pool},
	}, nil
}

var (
	_ port.OwnerStoragePort         = (*OwnerRepository)(nil)
	_ port.PropertyStoragePort      = (*PropertyRepository)(nil)
	_ port.PropertyImageStoragePort = (*PropertyImageRepository)(nil)
	_ port.PropertyTraceStoragePort = (*PropertyTraceRepository)(nil)
)

func newID() string {
	return uuid.New().String()
}

func notFoundOnNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func expectAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type OwnerRepository struct {
	pool *pgxpool.Pool
}

const ownerColumns = "id, name, address, photo, birthday, created_at, updated_at"

func scanOwner(row pgx.CollectableRow) (domain.Owner, error) {
	var o domain.Owner
	err := row.Scan(&o.ID, &o.Name, &o.Address, &o.Photo, &o.Birthday, &o.CreatedAt, &o.UpdatedAt)
	o.Birthday, o.CreatedAt, o.UpdatedAt = o.Birthday.UTC(), o.CreatedAt.UTC(), o.UpdatedAt.UTC()
	return o, err
}

func (r *OwnerRepository) List(ctx context.Context) ([]domain.Owner, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+ownerColumns+" FROM owners ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return pgx.CollectRows(rows, scanOwner)
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+ownerColumns+" FROM owners WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	owner, err := pgx.CollectExactlyOneRow(rows, scanOwner)
	if err != nil {
		return nil, notFoundOnNoRows(err)
	}
	return &owner, nil
}

func (r *OwnerRepository) Create(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	owner.ID = newID()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO owners ("+ownerColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		owner.ID, owner.Name, owner.Address, owner.Photo, owner.Birthday, owner.CreatedAt, owner.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert owner: %w", err)
	}
	return &owner, nil
}

func (r *OwnerRepository) Update(ctx context.Context, owner domain.Owner) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE owners SET name = $2, address = $3, photo = $4, birthday = $5, created_at = $6, updated_at = $7 WHERE id = $1`,
		owner.ID, owner.Name, owner.Address, owner.Photo, owner.Birthday, owner.CreatedAt, owner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}
	return expectAffected(tag)
}

func (r *OwnerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM owners WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete owner: %w", err)
	}
	return expectAffected(tag)
}

func (r *OwnerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM owners").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return n, nil
}

func (r *OwnerRepository) FindIDsByNameSubstring(ctx context.Context, text string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM owners WHERE name ILIKE $1 ESCAPE '\'`, "%"+escapeLike(text)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to find owners by name: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

type PropertyRepository struct {
	pool *pgxpool.Pool
}

const propertyColumnList = "p.id, p.name, p.address, p.price, p.code_internal, p.year, p.owner_id, p.created_at, p.updated_at"

func scanProperty(row pgx.CollectableRow) (domain.Property, error) {
	var p domain.Property
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	p.CreatedAt, p.UpdatedAt = p.CreatedAt.UTC(), p.UpdatedAt.UTC()
	return p, err
}

func (r *PropertyRepository) query(ctx context.Context, sql string, args ...interface{}) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanProperty)
}

func (r *PropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	props, err := r.query(ctx, "SELECT "+propertyColumnList+" FROM properties p ORDER BY p.created_at DESC, p.id")
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return props, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+propertyColumnList+" FROM properties p WHERE p.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	property, err := pgx.CollectExactlyOneRow(rows, scanProperty)
	if err != nil {
		return nil, notFoundOnNoRows(err)
	}
	return &property, nil
}

func (r *PropertyRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]domain.Property, error) {
	props, err := r.query(ctx, "SELECT "+propertyColumnList+" FROM properties p WHERE p.owner_id = $1 ORDER BY p.created_at DESC, p.id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties by owner: %w", err)
	}
	return props, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property domain.Property) (*domain.Property, error) {
	property.ID = newID()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO properties (id, name, address, price, code_internal, year, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		property.ID, property.Name, property.Address, property.Price, property.CodeInternal,
		property.Year, property.OwnerID, property.CreatedAt, property.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}
	return &property, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property domain.Property) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE properties SET name = $2, address = $3, price = $4, code_internal = $5, year = $6,
		 owner_id = $7, created_at = $8, updated_at = $9 WHERE id = $1`,
		property.ID, property.Name, property.Address, property.Price, property.CodeInternal,
		property.Year, property.OwnerID, property.CreatedAt, property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return expectAffected(tag)
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return expectAffected(tag)
}

// Count и Find выполняются вне общей транзакции
func (r *PropertyRepository) Count(ctx context.Context, predicate domain.Predicate) (int, error) {
	whereClause, args, err := applyPredicate(predicate)
	if err != nil {
		return 0, err
	}
	countQuery := "SELECT COUNT(*) FROM properties p " + whereClause

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to count properties with filters", err, port.Fields{"query": countQuery})
		return 0, fmt.Errorf("failed to count properties with filters: %w", err)
	}
	return total, nil
}

func (r *PropertyRepository) Find(ctx context.Context, predicate domain.Predicate, order domain.SortOrder, window domain.PageWindow) ([]domain.Property, error) {
	sql, args, err := buildFindQuery(predicate, order, window)
	if err != nil {
		return nil, err
	}
	props, err := r.query(ctx, sql, args...)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to find properties with filters", err, port.Fields{"query": sql})
		return nil, fmt.Errorf("failed to find properties with filters: %w", err)
	}
	return props, nil
}

func buildFindQuery(predicate domain.Predicate, order domain.SortOrder, window domain.PageWindow) (string, []interface{}, error) {
	whereClause, args, err := applyPredicate(predicate)
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf("SELECT %s FROM properties p %s %s LIMIT $%d OFFSET $%d",
		propertyColumnList, whereClause, orderClause(order), len(args)+1, len(args)+2)
	return sql, append(args, window.Limit, window.Offset), nil
}

type PropertyImageRepository struct {
	pool *pgxpool.Pool
}

const imageColumns = "id, property_id, file, enabled, created_at, updated_at"

func scanImage(row pgx.CollectableRow) (domain.PropertyImage, error) {
	var i domain.PropertyImage
	err := row.Scan(&i.ID, &i.PropertyID, &i.File, &i.Enabled, &i.CreatedAt, &i.UpdatedAt)
	i.CreatedAt, i.UpdatedAt = i.CreatedAt.UTC(), i.UpdatedAt.UTC()
	return i, err
}

func (r *PropertyImageRepository) List(ctx context.Context) ([]domain.PropertyImage, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+imageColumns+" FROM property_images ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list property images: %w", err)
	}
	return pgx.CollectRows(rows, scanImage)
}

func (r *PropertyImageRepository) GetByID(ctx context.Context, id string) (*domain.PropertyImage, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+imageColumns+" FROM property_images WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get property image: %w", err)
	}
	image, err := pgx.CollectExactlyOneRow(rows, scanImage)
	if err != nil {
		return nil, notFoundOnNoRows(err)
	}
	return &image, nil
}

func (r *PropertyImageRepository) ListEnabledByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyImage, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+imageColumns+" FROM property_images WHERE property_id = $1 AND enabled ORDER BY created_at, id", propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list property images by property: %w", err)
	}
	return pgx.CollectRows(rows, scanImage)
}

func (r *PropertyImageRepository) Create(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	image.ID = newID()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO property_images ("+imageColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		image.ID, image.PropertyID, image.File, image.Enabled, image.CreatedAt, image.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert property image: %w", err)
	}
	return &image, nil
}

func (r *PropertyImageRepository) Update(ctx context.Context, image domain.PropertyImage) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE property_images SET property_id = $2, file = $3, enabled = $4, created_at = $5, updated_at = $6 WHERE id = $1",
		image.ID, image.PropertyID, image.File, image.Enabled, image.CreatedAt, image.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update property image: %w", err)
	}
	return expectAffected(tag)
}

func (r *PropertyImageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM property_images WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete property image: %w", err)
	}
	return expectAffected(tag)
}

type PropertyTraceRepository struct {
	pool *pgxpool.Pool
}

const traceColumns = "id, property_id, date_sale, name, value, tax, created_at, updated_at"

func scanTrace(row pgx.CollectableRow) (domain.PropertyTrace, error) {
	var t domain.PropertyTrace
	err := row.Scan(&t.ID, &t.PropertyID, &t.DateSale, &t.Name, &t.Value, &t.Tax, &t.CreatedAt, &t.UpdatedAt)
	t.DateSale, t.CreatedAt, t.UpdatedAt = t.DateSale.UTC(), t.CreatedAt.UTC(), t.UpdatedAt.UTC()
	return t, err
}

func (r *PropertyTraceRepository) List(ctx context.Context) ([]domain.PropertyTrace, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+traceColumns+" FROM property_traces ORDER BY date_sale, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list property traces: %w", err)
	}
	return pgx.CollectRows(rows, scanTrace)
}

func (r *PropertyTraceRepository) GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+traceColumns+" FROM property_traces WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get property trace: %w", err)
	}
	trace, err := pgx.CollectExactlyOneRow(rows, scanTrace)
	if err != nil {
		return nil, notFoundOnNoRows(err)
	}
	return &trace, nil
}

func (r *PropertyTraceRepository) ListByPropertyID(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+traceColumns+" FROM property_traces WHERE property_id = $1 ORDER BY date_sale, id", propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list property traces by property: %w", err)
	}
	return pgx.CollectRows(rows, scanTrace)
}

func (r *PropertyTraceRepository) Create(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	trace.ID = newID()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO property_traces ("+traceColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		trace.ID, trace.PropertyID, trace.DateSale, trace.Name, trace.Value, trace.Tax, trace.CreatedAt, trace.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert property trace: %w", err)
	}
	return &trace, nil
}

func (r *PropertyTraceRepository) Update(ctx context.Context, trace domain.PropertyTrace) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE property_traces SET property_id = $2, date_sale = $3, name = $4, value = $5, tax = $6,
		 created_at = $7, updated_at = $8 WHERE id = $1`,
		trace.ID, trace.PropertyID, trace.DateSale, trace.Name, trace.Value, trace.Tax, trace.CreatedAt, trace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update property trace: %w", err)
	}
	return expectAffected(tag)
}

func (r *PropertyTraceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM property_traces WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete property trace: %w", err)
	}
	return expectAffected(tag)
}

func (r *PropertyTraceRepository) DeleteByPropertyID(ctx context.Context, propertyID string) (int, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM property_traces WHERE property_id = $1", propertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete property traces by property: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"kasiBack/internal/models"
)

// SQLDialect captures the placeholder and full-text syntax of one driver.
type SQLDialect struct {
	Name        string
	placeholder func(n int) string
	textMatch   func(ph string) string
}

var (
	MySQLDialect = SQLDialect{
		Name:        "mysql",
		placeholder: func(int) string { return "?" },
		textMatch: func(ph string) string {
			return fmt.Sprintf("MATCH(l.search_text) AGAINST (%s IN NATURAL LANGUAGE MODE)", ph)
		},
	}
	PostgresDialect = SQLDialect{
		Name:        "pgx",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		textMatch: func(ph string) string {
			return fmt.Sprintf("to_tsvector('simple', l.search_text) @@ plainto_tsquery('simple', %s)", ph)
		},
	}
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (SQLDialect, error) {
	switch driver {
	case "mysql":
		return MySQLDialect, nil
	case "pgx", "postgres":
		return PostgresDialect, nil
	}
	return SQLDialect{}, fmt.Errorf("unsupported sql driver %q", driver)
}

// SQLListingRepository searches the flattened listing tables described in
// migrations/. Each row keeps the full listing as a JSON document next to
// the searchable columns.
type SQLListingRepository struct {
	DB      *sql.DB
	Dialect SQLDialect
}

type sqlQuery struct {
	text string
	args []interface{}
}

type whereBuilder struct {
	dialect    SQLDialect
	conditions []string
	params     []interface{}
}

func (b *whereBuilder) next(v interface{}) string {
	b.params = append(b.params, v)
	return b.dialect.placeholder(len(b.params))
}

func (b *whereBuilder) add(cond string) {
	b.conditions = append(b.conditions, cond)
}

func (b *whereBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func buildSQLWhere(d *models.ListingDescriptor, f models.ListingFilter, dialect SQLDialect) *whereBuilder {
	b := &whereBuilder{dialect: dialect}

	status := f.Status
	if status == "" {
		status = d.Status
	}
	b.add("l.status = " + b.next(status))

	if f.Text != "" {
		b.add(dialect.textMatch(b.next(f.Text)))
	}

	if f.Location != "" && len(d.LocationFields) > 0 {
		pattern := "%" + strings.ToLower(escapeLike(f.Location)) + "%"
		var alternatives []string
		for _, field := range d.LocationFields {
			alternatives = append(alternatives, fmt.Sprintf("LOWER(l.%s) LIKE %s", field.Column, b.next(pattern)))
		}
		if len(alternatives) == 1 {
			b.add(alternatives[0])
		} else {
			b.add("(" + strings.Join(alternatives, " OR ") + ")")
		}
	}

	if f.MinPrice != nil && d.PriceMin != nil {
		b.add(fmt.Sprintf("l.%s >= %s", d.PriceMin.Column, b.next(*f.MinPrice)))
	}
	if f.MaxPrice != nil && d.PriceMax != nil {
		b.add(fmt.Sprintf("l.%s <= %s", d.PriceMax.Column, b.next(*f.MaxPrice)))
	}

	if f.Category != "" && d.Category != nil {
		b.add(fmt.Sprintf("l.%s = %s", d.Category.Column, b.next(f.Category)))
	}
	return b
}

func buildSQLFind(d *models.ListingDescriptor, f models.ListingFilter, opts models.FindOptions, dialect SQLDialect) sqlQuery {
	b := buildSQLWhere(d, f, dialect)

	var q strings.Builder
	q.WriteString("SELECT l.document")
	if opts.Populate {
		q.WriteString(", u.id, u.name, u.email, u.phone")
	}
	fmt.Fprintf(&q, " FROM %s l", d.Collection)
	if opts.Populate {
		q.WriteString(" LEFT JOIN users u ON u.id = l.owner_id")
	}
	q.WriteString(b.clause())

	if !opts.Suggest && len(d.Sort) > 0 {
		keys := make([]string, 0, len(d.Sort))
		for _, key := range d.Sort {
			dir := "ASC"
			if key.Desc {
				dir = "DESC"
			}
			keys = append(keys, fmt.Sprintf("l.%s %s", key.Field.Column, dir))
		}
		q.WriteString(" ORDER BY " + strings.Join(keys, ", "))
	}

	if opts.Limit > 0 {
		q.WriteString(" LIMIT " + b.next(opts.Limit))
		if opts.Skip > 0 {
			q.WriteString(" OFFSET " + b.next(opts.Skip))
		}
	}

	return sqlQuery{text: q.String(), args: b.params}
}

func buildSQLCount(d *models.ListingDescriptor, f models.ListingFilter, dialect SQLDialect) sqlQuery {
	b := buildSQLWhere(d, f, dialect)
	return sqlQuery{
		text: fmt.Sprintf("SELECT COUNT(*) FROM %s l", d.Collection) + b.clause(),
		args: b.params,
	}
}

func (r *SQLListingRepository) Find(ctx context.Context, filter models.ListingFilter, opts models.FindOptions) ([]models.Listing, error) {
	d, err := models.Descriptor(filter.Type)
	if err != nil {
		return nil, err
	}

	q := buildSQLFind(d, filter, opts, r.Dialect)
	rows, err := r.DB.QueryContext(ctx, q.text, q.args...)
	if err != nil {
		return nil, classifySQLError(fmt.Errorf("query %s: %w", d.Collection, err))
	}
	defer rows.Close()

	listings := make([]models.Listing, 0)
	for rows.Next() {
		var (
			document []byte
			owner    sqlOwner
		)
		dest := []interface{}{&document}
		if opts.Populate {
			dest = append(dest, &owner.ID, &owner.Name, &owner.Email, &owner.Phone)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", d.Collection, err)
		}
		listing, err := decodeSQLListing(d.Type, document, owner.toModel())
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLError(fmt.Errorf("rows %s: %w", d.Collection, err))
	}
	return listings, nil
}

func (r *SQLListingRepository) Count(ctx context.Context, filter models.ListingFilter) (int64, error) {
	d, err := models.Descriptor(filter.Type)
	if err != nil {
		return 0, err
	}

	q := buildSQLCount(d, filter, r.Dialect)
	var n int64
	if err := r.DB.QueryRowContext(ctx, q.text, q.args...).Scan(&n); err != nil {
		return 0, classifySQLError(fmt.Errorf("count %s: %w", d.Collection, err))
	}
	return n, nil
}

func (r *SQLListingRepository) Ping(ctx context.Context) error {
	if r.DB == nil {
		return models.ErrStoreUnavailable
	}
	if err := r.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

type sqlOwner struct {
	ID    sql.NullString
	Name  sql.NullString
	Email sql.NullString
	Phone sql.NullString
}

func (o sqlOwner) toModel() *models.Owner {
	if !o.ID.Valid {
		return nil
	}
	return &models.Owner{ID: o.ID.String, Name: o.Name.String, Email: o.Email.String, Phone: o.Phone.String}
}

func decodeSQLListing(t models.ListingType, document []byte, owner *models.Owner) (models.Listing, error) {
	switch t {
	case models.ListingTypeRentals:
		var v models.Rental
		if err := json.Unmarshal(document, &v); err != nil {
			return nil, fmt.Errorf("decode rental: %w", err)
		}
		v.Landlord = owner
		return v, nil
	case models.ListingTypeJobs:
		var v models.Job
		if err := json.Unmarshal(document, &v); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		v.Employer = owner
		return v, nil
	case models.ListingTypeSkills:
		var v models.Skill
		if err := json.Unmarshal(document, &v); err != nil {
			return nil, fmt.Errorf("decode skill: %w", err)
		}
		v.Provider = owner
		return v, nil
	case models.ListingTypeBusinesses:
		var v models.Business
		if err := json.Unmarshal(document, &v); err != nil {
			return nil, fmt.Errorf("decode business: %w", err)
		}
		v.Owner = owner
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", models.ErrInvalidSearchType, t)
}

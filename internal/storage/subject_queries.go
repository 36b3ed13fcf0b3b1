package storage

import (
	"certportal/internal/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	SubjectFilterAll      = "all"
	SubjectFilterActive   = "active"
	SubjectFilterInactive = "inactive"
)

// SubjectSearchAll searches every column of the kind and is the default search_in token.
const SubjectSearchAll = "all"

// searchColumns lists, per kind, the search_in tokens and the columns they search.
var searchColumns = map[models.SubjectKind][][2]string{
	models.SubjectPerson: {
		{"name", "s.name"},
		{"tax_id", "s.tax_id"},
	},
	models.SubjectEquipment: {
		{"serial", "s.serial"},
		{"brand", "s.brand"},
		{"type", "s.equipment_type"},
		{"model", "s.model"},
	},
}

var sortColumns = map[models.SubjectKind][][2]string{
	models.SubjectPerson: {
		{"name", "s.name"},
		{"tax_id", "s.tax_id"},
	},
	models.SubjectEquipment: {
		{"type", "s.equipment_type"},
		{"brand", "s.brand"},
		{"model", "s.model"},
		{"serial", "s.serial"},
	},
}

func lookupColumn(table [][2]string, token string) string {
	for _, entry := range table {
		if strings.EqualFold(entry[0], token) {
			return entry[1]
		}
	}
	return table[0][1]
}

// searchClause matches the placeholder against the column named by token, or against every
// searchable column of the kind when the token is "all", empty or unknown.
func searchClause(kind models.SubjectKind, token string, placeholder int) string {
	columns := searchColumns[kind]
	if !strings.EqualFold(token, SubjectSearchAll) {
		for _, entry := range columns {
			if strings.EqualFold(entry[0], token) {
				return fmt.Sprintf("%s ILIKE $%d", entry[1], placeholder)
			}
		}
	}

	terms := make([]string, len(columns))
	for i, entry := range columns {
		terms[i] = fmt.Sprintf("%s ILIKE $%d", entry[1], placeholder)
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

type subjectListQuery struct {
	count string
	list  string
	args  []any
}

// buildSubjectListQuery builds the count and page queries for a subject listing. Only
// subjects holding at least one certificate of the type for the client are returned.
// Searches default to every column; unknown sort tokens fall back to the kind's first column.
func buildSubjectListQuery(params models.SubjectListParams) (*subjectListQuery, error) {
	var table, idColumn, selectColumns string
	switch params.Kind {
	case models.SubjectPerson:
		table, idColumn = "persons", "person_id"
		selectColumns = "s.id, s.name, s.tax_id, '', '', '', s.active"
	case models.SubjectEquipment:
		table, idColumn = "equipment", "equipment_id"
		selectColumns = "s.id, s.serial, '', s.equipment_type, s.brand, s.model, s.active"
	default:
		return nil, fmt.Errorf("unsupported subject kind %s", params.Kind)
	}

	args := []any{params.DocumentTypeID, params.ClientID}
	where := []string{
		`EXISTS (SELECT 1 FROM certificates c WHERE c.` + idColumn + ` = s.id AND c.document_type_id = $1 AND c.client_id = $2)`,
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		where = append(where, searchClause(params.Kind, params.SearchIn, len(args)))
	}

	switch strings.ToLower(params.Filter) {
	case SubjectFilterActive, "activos":
		where = append(where, "s.active")
	case SubjectFilterInactive, "inactivos":
		where = append(where, "NOT s.active")
	}

	from := " FROM " + table + " s WHERE " + strings.Join(where, " AND ")

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultSubjectPageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	orderBy := lookupColumn(sortColumns[params.Kind], params.SortBy)

	listArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	return &subjectListQuery{
		count: "SELECT COUNT(*)" + from,
		list: fmt.Sprintf("SELECT %s%s ORDER BY %s ASC, s.id ASC LIMIT $%d OFFSET $%d",
			selectColumns, from, orderBy, len(args)+1, len(args)+2),
		args: listArgs,
	}, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (p *DatabaseProvider) ListSubjects(ctx context.Context, params models.SubjectListParams) (*models.SubjectPage, error) {
	q, err := buildSubjectListQuery(params)
	if err != nil {
		return nil, err
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultSubjectPageSize
	}
	page := max(params.Page, 1)

	var total int
	countArgs := q.args[:len(q.args)-2]
	if err := p.db.QueryRow(ctx, q.count, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}

	rows, err := p.db.Query(ctx, q.list, q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		s := models.Subject{Kind: params.Kind}
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Type, &s.Brand, &s.Model, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return &models.SubjectPage{
		Subjects:   subjects,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (p *DatabaseProvider) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	query := `SELECT id, name, tax_id, active FROM persons WHERE id = $1`

	var person models.Person
	err := p.db.QueryRow(ctx, query, id).Scan(&person.ID, &person.Name, &person.TaxID, &person.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, SubjectNotFoundError
		}
		return nil, fmt.Errorf("failed to get person %d: %w", id, err)
	}

	return &person, nil
}

func (p *DatabaseProvider) GetEquipment(ctx context.Context, id int64) (*models.Equipment, error) {
	query := `SELECT id, serial, equipment_type, brand, model, active FROM equipment WHERE id = $1`

	var e models.Equipment
	err := p.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Serial, &e.EquipmentType, &e.Brand, &e.Model, &e.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, SubjectNotFoundError
		}
		return nil, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}

	return &e, nil
}

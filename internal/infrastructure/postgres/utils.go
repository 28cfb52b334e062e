package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Querier operaciones comunes de *pgxpool.Pool y pgx.Tx: los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02" // p. ej. uuid mal formado
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// isInvalidID indica un identificador que no es uuid: se trata como inexistente.
func isInvalidID(err error) bool {
	return pgCode(err) == pgInvalidText
}

// writeError traduce errores de escritura a errores de dominio.
func writeError(op string, err error) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return domain.ErrDuplicate
	case pgForeignKeyViolation, pgInvalidText:
		return domain.ErrNotFound
	case pgCheckViolation:
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("%s: %w", op, err)
}

// readError devuelve (true, nil) cuando la fila no existe y la lectura debe devolver nil.
func readError(op string, err error) (bool, error) {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
		return true, nil
	}
	return false, fmt.Errorf("%s: %w", op, err)
}

// setActive activa o desactiva una fila de table (borrado lógico).
func setActive(ctx context.Context, q Querier, table, id string, active bool, at time.Time) error {
	query := `UPDATE ` + table + ` SET is_active = $2,
		deleted_at = CASE WHEN $2 THEN NULL ELSE $3::timestamptz END,
		updated_at = $3
		WHERE id = $1`
	cmd, err := q.Exec(ctx, query, id, active, at)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set active %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// where acumula condiciones con parámetros posicionales ($1, $2...).
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente parámetro.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) addIf(ok bool, cond string, arg any) {
	if ok {
		w.add(cond, arg)
	}
}

func (w *where) activeOnly(includeInactive bool, column string) {
	if !includeInactive {
		w.conds = append(w.conds, column+" = TRUE")
	}
}

func (w *where) search(term string, columns ...string) {
	if term == "" {
		return
	}
	w.args = append(w.args, "%"+term+"%")
	param := fmt.Sprintf("$%d", len(w.args))
	ors := make([]string, 0, len(columns))
	for _, c := range columns {
		ors = append(ors, c+" ILIKE "+param)
	}
	w.conds = append(w.conds, "("+strings.Join(ors, " OR ")+")")
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page devuelve LIMIT/OFFSET y sus argumentos, sin modificar las condiciones.
func (w *where) page(limit, offset int) (string, []any) {
	args := append([]any{}, w.args...)
	clause := ""
	if limit > 0 {
		args = append(args, limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return clause, args
}

func (w *where) count(ctx context.Context, q Querier, from string) (int, error) {
	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+from+w.sql(), w.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación del puerto LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const camposLote = `id, producto_id, fecha_ingreso, stock_inicial, stock_restante, precio_compra_unitario, estado, created_at`

// ListarActivos devuelve los lotes elegibles del producto en orden FIFO
// total: fecha_ingreso ascendente con empate por id.
func (r *LoteRepo) ListarActivos(productoID string) ([]*entity.Lote, error) {
	query := `
		SELECT ` + camposLote + `
		FROM lotes
		WHERE producto_id = $1 AND estado = 'activo' AND stock_restante > 0
		ORDER BY fecha_ingreso ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes activos: %w", err)
	}
	defer rows.Close()

	var lotes []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, err
		}
		lotes = append(lotes, l)
	}
	return lotes, rows.Err()
}

// GetByID obtiene un lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `SELECT ` + camposLote + ` FROM lotes WHERE id = $1`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE) dentro
// de la transacción del committer.
func (r *LoteRepo) GetForUpdate(id string) (*entity.Lote, error) {
	query := `SELECT ` + camposLote + ` FROM lotes WHERE id = $1 FOR UPDATE`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote for update: %w", err)
	}
	return l, nil
}

// Descontar resta cantidad de stock_restante y marca el lote agotado al
// llegar a 0. El CHECK stock_restante >= 0 de la tabla respalda la
// validación del committer.
func (r *LoteRepo) Descontar(id string, cantidad decimal.Decimal) error {
	query := `
		UPDATE lotes
		SET stock_restante = stock_restante - $2,
		    estado = CASE WHEN stock_restante - $2 <= 0 THEN 'agotado' ELSE estado END
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, cantidad)
	if err != nil {
		return fmt.Errorf("descontar lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoteNoEncontrado
	}
	return nil
}

// CostoCabezaFIFO devuelve el costo unitario del lote activo más antiguo del
// producto, o 0 si no queda ninguno.
func (r *LoteRepo) CostoCabezaFIFO(productoID string) (decimal.Decimal, error) {
	query := `
		SELECT precio_compra_unitario
		FROM lotes
		WHERE producto_id = $1 AND estado = 'activo' AND stock_restante > 0
		ORDER BY fecha_ingreso ASC, id ASC
		LIMIT 1`
	var costo decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productoID).Scan(&costo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("costo cabeza FIFO: %w", err)
	}
	return costo, nil
}

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(
		&l.ID, &l.ProductoID, &l.FechaIngreso, &l.StockInicial, &l.StockRestante,
		&l.PrecioCompraUnitario, &l.Estado, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

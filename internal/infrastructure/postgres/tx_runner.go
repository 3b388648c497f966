package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure TxRunner implements ventas.TxRunner.
var _ ventas.TxRunner = (*TxRunner)(nil)

// Reintentos ante conflictos de escritura. Cada reintento reinicia la
// transacción completa (fase de lectura incluida); nunca se reusa una lectura
// vieja. Agotados, el conflicto emerge como ConcurrentModificationError.
const (
	maxReintentos  = 3
	backoffInicial = 25 * time.Millisecond
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// reintentos acotados sobre fallas de serialización y deadlocks.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Conflictos de escritura (40001/40P01) reintentan fn
// desde cero con backoff exponencial.
func (r *TxRunner) Run(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
	movRepo repository.MovimientoRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	backoff := backoffInicial
	var ultimo error
	for intento := 0; intento <= maxReintentos; intento++ {
		if intento > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		ultimo = err
	}
	return &domain.ConcurrentModificationError{Refs: []string{ultimo.Error()}}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
	movRepo repository.MovimientoRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loteRepo := NewLoteRepository(tx)
	productoRepo := NewProductoRepository(tx)
	ventaRepo := NewVentaRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	pagoRepo := NewPagoRepository(tx)

	if err := fn(loteRepo, productoRepo, ventaRepo, movRepo, pagoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

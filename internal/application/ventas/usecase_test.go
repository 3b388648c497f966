package ventas_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un único store implementa todos los puertos del motor.
// El TxRunner fake entrega el mismo store como repos "atados a la tx"; como el
// protocolo valida antes de escribir, un intento rechazado no deja efectos.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lotes       map[string]*entity.Lote
	productos   map[string]*entity.Producto
	ventas      map[string]*entity.Venta
	items       map[string][]*entity.ItemVenta
	movimientos []*entity.MovimientoStock
	pagos       map[string][]entity.Pago
	invalidados []string
}

func newMemStore() *memStore {
	return &memStore{
		lotes:     make(map[string]*entity.Lote),
		productos: make(map[string]*entity.Producto),
		ventas:    make(map[string]*entity.Venta),
		items:     make(map[string][]*entity.ItemVenta),
		pagos:     make(map[string][]entity.Pago),
	}
}

// LoteRepository / LotLedger

func (s *memStore) ListarActivos(productoID string) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, l := range s.lotes {
		if l.ProductoID == productoID && l.Elegible() {
			out = append(out, copiaLote(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FechaIngreso.Equal(out[j].FechaIngreso) {
			return out[i].ID < out[j].ID
		}
		return out[i].FechaIngreso.Before(out[j].FechaIngreso)
	})
	return out, nil
}

// Las lecturas devuelven copias desprendidas, igual que el scan de pgx: lo
// que el motor leyó no se mueve aunque la "tabla" cambie después.
func copiaLote(l *entity.Lote) *entity.Lote {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func (s *memStore) GetByID(id string) (*entity.Lote, error)      { return copiaLote(s.lotes[id]), nil }
func (s *memStore) GetForUpdate(id string) (*entity.Lote, error) { return copiaLote(s.lotes[id]), nil }

func (s *memStore) Descontar(id string, cantidad decimal.Decimal) error {
	l := s.lotes[id]
	if l == nil {
		return domain.ErrLoteNoEncontrado
	}
	l.StockRestante = l.StockRestante.Sub(cantidad)
	if l.StockRestante.IsZero() {
		l.Estado = entity.LoteAgotado
	}
	return nil
}

func (s *memStore) CostoCabezaFIFO(productoID string) (decimal.Decimal, error) {
	activos, _ := s.ListarActivos(productoID)
	if len(activos) == 0 {
		return decimal.Zero, nil
	}
	return activos[0].PrecioCompraUnitario, nil
}

func (s *memStore) Invalidar(productoIDs ...string) {
	s.invalidados = append(s.invalidados, productoIDs...)
}

// ProductoRepository (métodos con nombres distintos van por wrapper abajo)

type productoStore struct{ s *memStore }

func (p productoStore) Create(producto *entity.Producto) error {
	p.s.productos[producto.ID] = producto
	return nil
}
func copiaProducto(p *entity.Producto) *entity.Producto {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (p productoStore) GetByID(id string) (*entity.Producto, error) {
	return copiaProducto(p.s.productos[id]), nil
}
func (p productoStore) GetByCodigo(codigo string) (*entity.Producto, error) {
	for _, pr := range p.s.productos {
		if pr.Codigo == codigo {
			return copiaProducto(pr), nil
		}
	}
	return nil, nil
}
func (p productoStore) GetForUpdate(id string) (*entity.Producto, error) {
	return copiaProducto(p.s.productos[id]), nil
}
func (p productoStore) Update(producto *entity.Producto) error {
	p.s.productos[producto.ID] = producto
	return nil
}
func (p productoStore) ActualizarStock(id string, stockActual, precioCompraDefault decimal.Decimal) error {
	pr := p.s.productos[id]
	if pr == nil {
		return domain.ErrProductoNoEncontrado
	}
	pr.StockActual = stockActual
	pr.PrecioCompraDefault = precioCompraDefault
	return nil
}
func (p productoStore) List(limit, offset int) ([]*entity.Producto, error) { return nil, nil }

// VentaRepository

type ventaStore struct{ s *memStore }

func (v ventaStore) Create(venta *entity.Venta) error { v.s.ventas[venta.ID] = venta; return nil }
func (v ventaStore) CreateItem(item *entity.ItemVenta) error {
	v.s.items[item.VentaID] = append(v.s.items[item.VentaID], item)
	return nil
}
func (v ventaStore) GetByID(id string) (*entity.Venta, error) { return v.s.ventas[id], nil }
func (v ventaStore) GetItems(ventaID string) ([]*entity.ItemVenta, error) {
	return v.s.items[ventaID], nil
}
func (v ventaStore) ActualizarEstado(id, estado string) error {
	venta := v.s.ventas[id]
	if venta == nil {
		return domain.ErrVentaNoEncontrada
	}
	venta.Estado = estado
	return nil
}
func (v ventaStore) List(tipo string, limit, offset int) ([]*entity.Venta, error) { return nil, nil }

// MovimientoRepository

type movStore struct{ s *memStore }

func (m movStore) Create(mov *entity.MovimientoStock) error {
	m.s.movimientos = append(m.s.movimientos, mov)
	return nil
}
func (m movStore) ListByProducto(string, *time.Time, *time.Time, int, int) ([]*entity.MovimientoStock, error) {
	return m.s.movimientos, nil
}
func (m movStore) ListByVenta(ventaID string) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, mov := range m.s.movimientos {
		if mov.VentaID == ventaID {
			out = append(out, mov)
		}
	}
	return out, nil
}

// PagoRepository

type pagoStore struct{ s *memStore }

func (p pagoStore) Create(ventaID string, pago entity.Pago) error {
	p.s.pagos[ventaID] = append(p.s.pagos[ventaID], pago)
	return nil
}
func (p pagoStore) ListByVenta(ventaID string) ([]entity.Pago, error) { return p.s.pagos[ventaID], nil }

// TxRunner

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(_ context.Context, fn func(
	repository.LoteRepository,
	repository.ProductoRepository,
	repository.VentaRepository,
	repository.MovimientoRepository,
	repository.PagoRepository,
) error) error {
	return fn(r.s, productoStore{r.s}, ventaStore{r.s}, movStore{r.s}, pagoStore{r.s})
}

// conflictTxRunner simula un conflicto de escritura irresoluble.
type conflictTxRunner struct{}

func (conflictTxRunner) Run(context.Context, func(
	repository.LoteRepository,
	repository.ProductoRepository,
	repository.VentaRepository,
	repository.MovimientoRepository,
	repository.PagoRepository,
) error) error {
	return &domain.ConcurrentModificationError{Refs: []string{"lotes/B1"}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: P1 con B1(día 1, stock 5, costo 10.00) y B2(día 2, stock 10,
// costo 12.00); precio de venta por defecto 20.00.
// ──────────────────────────────────────────────────────────────────────────────

var base = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func escenarioBase(t *testing.T) (*memStore, *ventas.MotorVentas) {
	t.Helper()
	s := newMemStore()
	s.productos["P1"] = &entity.Producto{
		ID:                 "P1",
		Codigo:             "FIL-ACE-001",
		Nombre:             "Filtro de aceite",
		StockActual:        dec("15"),
		PrecioVentaDefault: dec("20.00"),
		PrecioVentaMinimo:  dec("14.00"),
	}
	s.lotes["B1"] = &entity.Lote{
		ID: "B1", ProductoID: "P1", FechaIngreso: base.AddDate(0, 0, 1),
		StockInicial: dec("5"), StockRestante: dec("5"),
		PrecioCompraUnitario: dec("10.00"), Estado: entity.LoteActivo,
	}
	s.lotes["B2"] = &entity.Lote{
		ID: "B2", ProductoID: "P1", FechaIngreso: base.AddDate(0, 0, 2),
		StockInicial: dec("10"), StockRestante: dec("10"),
		PrecioCompraUnitario: dec("12.00"), Estado: entity.LoteActivo,
	}
	motor := ventas.NewMotorVentas(memTxRunner{s}, s, productoStore{s}, ventaStore{s}, pagoStore{s}, movStore{s})
	return s, motor
}

func borradorVenta(t *testing.T, motor *ventas.MotorVentas) *entity.Venta {
	t.Helper()
	b, err := motor.NuevoBorrador(entity.DocVenta, "Mostrador", "u1")
	require.NoError(t, err)
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestAgregarItem_UnItemPorLoteTocado(t *testing.T) {
	s, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	res, err := motor.AgregarItem(context.Background(), b, "P1", dec("8"), dec("20.00"))
	require.NoError(t, err)
	require.Len(t, res.Items, 2, "8 unidades cruzan B1 y B2: dos items")
	assert.False(t, res.PrecioBajoMinimo)

	i1, i2 := res.Items[0], res.Items[1]
	assert.Equal(t, "B1", i1.LoteID)
	assert.True(t, i1.Cantidad.Equal(dec("5")))
	assert.True(t, i1.PrecioCompraUnitario.Equal(dec("10.00")))
	assert.True(t, i1.GananciaUnitaria.Equal(dec("10.00")))

	assert.Equal(t, "B2", i2.LoteID)
	assert.True(t, i2.Cantidad.Equal(dec("3")))
	assert.True(t, i2.PrecioCompraUnitario.Equal(dec("12.00")))
	assert.True(t, i2.GananciaUnitaria.Equal(dec("8.00")))

	assert.True(t, b.TotalMonto.Equal(dec("160.00")), "subtotal 8×20.00")
	assert.True(t, b.GananciaTotal.Equal(dec("74.00")), "5×10.00 + 3×8.00")

	// El preview es especulativo: los lotes no se tocan.
	assert.True(t, s.lotes["B1"].StockRestante.Equal(dec("5")))
	assert.True(t, s.lotes["B2"].StockRestante.Equal(dec("10")))
}

func TestAgregarItem_InsuficienteNoMutaElBorrador(t *testing.T) {
	_, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	_, err := motor.AgregarItem(context.Background(), b, "P1", dec("20"), dec("20.00"))
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Faltante.Equal(dec("5")), "elegible 15, pedido 20")
	assert.Empty(t, b.Items)
	assert.True(t, b.TotalMonto.IsZero())
}

func TestAgregarItem_AdvertenciaPrecioBajoMinimo(t *testing.T) {
	_, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	res, err := motor.AgregarItem(context.Background(), b, "P1", dec("2"), dec("13.50"))
	require.NoError(t, err)
	assert.True(t, res.PrecioBajoMinimo, "13.50 < mínimo 14.00: advertencia, no rechazo")
	assert.True(t, res.PrecioVentaMinimo.Equal(dec("14.00")))
}

func TestAgregarItem_PrecioCeroTomaElDefault(t *testing.T) {
	_, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	res, err := motor.AgregarItem(context.Background(), b, "P1", dec("2"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, res.Items[0].PrecioVentaUnitario.Equal(dec("20.00")))
}

func TestEditarItem_RecalculaConCostoCabezaActual(t *testing.T) {
	s, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	res, err := motor.AgregarItem(context.Background(), b, "P1", dec("5"), dec("20.00"))
	require.NoError(t, err)
	item := res.Items[0]
	require.True(t, item.PrecioCompraUnitario.Equal(dec("10.00")), "base de costo original: B1")

	// Otro commit agotó B1 entre medio: la cabeza FIFO ahora es B2 (12.00).
	s.lotes["B1"].StockRestante = decimal.Zero
	s.lotes["B1"].Estado = entity.LoteAgotado

	editado, err := motor.EditarItem(context.Background(), b, item.ID, dec("3"), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "B1", editado.LoteID, "la referencia al lote no cambia")
	assert.True(t, editado.PrecioCompraUnitario.Equal(dec("12.00")),
		"la base de costo se re-consulta de la cabeza FIFO actual, no del lote consumido")
	assert.True(t, editado.Subtotal.Equal(dec("60.00")))
	assert.True(t, editado.GananciaTotal.Equal(dec("24.00")), "3 × (20.00 − 12.00)")
	assert.True(t, b.TotalMonto.Equal(dec("60.00")))
}

func TestQuitarItem(t *testing.T) {
	_, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	res, err := motor.AgregarItem(context.Background(), b, "P1", dec("2"), dec("20.00"))
	require.NoError(t, err)

	require.NoError(t, motor.QuitarItem(b, res.Items[0].ID))
	assert.Empty(t, b.Items)
	assert.True(t, b.TotalMonto.IsZero())

	assert.ErrorIs(t, motor.QuitarItem(b, "no-existe"), domain.ErrItemNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_VentaDirectaConPagoMixto(t *testing.T) {
	s, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	_, err := motor.AgregarItem(context.Background(), b, "P1", dec("8"), dec("20.00"))
	require.NoError(t, err)

	_, err = motor.ReconciliarPagos(b, []entity.Pago{
		{Metodo: entity.MetodoEfectivo, Monto: dec("100.00")},
		{Metodo: entity.MetodoYape, Monto: dec("60.00")},
	})
	require.NoError(t, err)

	venta, err := motor.Commit(context.Background(), b, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoCompletada, venta.Estado)

	// Conservación: cada lote baja exactamente lo comprometido.
	assert.True(t, s.lotes["B1"].StockRestante.IsZero())
	assert.Equal(t, entity.LoteAgotado, s.lotes["B1"].Estado)
	assert.True(t, s.lotes["B2"].StockRestante.Equal(dec("7")))
	assert.Equal(t, entity.LoteActivo, s.lotes["B2"].Estado)

	// Agregado del producto y cache de costo de exhibición.
	p := s.productos["P1"]
	assert.True(t, p.StockActual.Equal(dec("7")))
	assert.True(t, p.PrecioCompraDefault.Equal(dec("12.00")), "siguiente lote disponible: B2")

	// Auditoría: un movimiento por lote tocado, con el stock resultante.
	require.Len(t, s.movimientos, 2)
	assert.Equal(t, "B1", s.movimientos[0].LoteID)
	assert.True(t, s.movimientos[0].Cantidad.Equal(dec("5")))
	assert.True(t, s.movimientos[0].StockResultante.IsZero())
	assert.Equal(t, "B2", s.movimientos[1].LoteID)
	assert.True(t, s.movimientos[1].StockResultante.Equal(dec("7")))

	// Pagos persistidos y cabecera guardada.
	require.Len(t, s.pagos[venta.ID], 2)
	require.NotNil(t, s.ventas[venta.ID])
	require.Len(t, s.items[venta.ID], 2)

	// El cache del ledger se invalida para el producto tocado.
	assert.Contains(t, s.invalidados, "P1")
}

func TestCommit_MismoLoteDesdeDosItems(t *testing.T) {
	s, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	// El mismo producto agregado dos veces consume el mismo lote B1.
	_, err := motor.AgregarItem(context.Background(), b, "P1", dec("2"), dec("20.00"))
	require.NoError(t, err)
	_, err = motor.AgregarItem(context.Background(), b, "P1", dec("2"), dec("20.00"))
	require.NoError(t, err)

	_, err = motor.ReconciliarPagos(b, []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("80.00")}})
	require.NoError(t, err)

	_, err = motor.Commit(context.Background(), b, "u1")
	require.NoError(t, err)

	assert.True(t, s.lotes["B1"].StockRestante.Equal(dec("1")))
	require.Len(t, s.movimientos, 1, "el consumo se agrega por lote: un solo movimiento")
	assert.True(t, s.movimientos[0].Cantidad.Equal(dec("4")))
}

func TestCommit_MovimientosPartenDelSnapshotLeido(t *testing.T) {
	s, motor := escenarioBase(t)

	// Primer commit: 8 unidades agotan B1 y dejan B2 en 7.
	b1 := borradorVenta(t, motor)
	_, err := motor.AgregarItem(context.Background(), b1, "P1", dec("8"), dec("20.00"))
	require.NoError(t, err)
	_, err = motor.ReconciliarPagos(b1, []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("160.00")}})
	require.NoError(t, err)
	_, err = motor.Commit(context.Background(), b1, "u1")
	require.NoError(t, err)

	// El resultante se computa desde lo leído al inicio del intento, no desde
	// el lote ya descontado: B1 queda en 0, no en −5.
	require.Len(t, s.movimientos, 2)
	assert.True(t, s.movimientos[0].StockResultante.IsZero(), "B1: 5 − 5")
	assert.True(t, s.movimientos[1].StockResultante.Equal(dec("7")), "B2: 10 − 3")

	// Segundo commit: su snapshot parte del stock que dejó el primero.
	b2 := borradorVenta(t, motor)
	_, err = motor.AgregarItem(context.Background(), b2, "P1", dec("4"), dec("20.00"))
	require.NoError(t, err)
	_, err = motor.ReconciliarPagos(b2, []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("80.00")}})
	require.NoError(t, err)
	_, err = motor.Commit(context.Background(), b2, "u1")
	require.NoError(t, err)

	require.Len(t, s.movimientos, 3)
	assert.Equal(t, "B2", s.movimientos[2].LoteID)
	assert.True(t, s.movimientos[2].StockResultante.Equal(dec("3")), "B2: 7 − 4")
}

func TestGetVenta_PagosEnOrdenDeCaptura(t *testing.T) {
	_, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	_, err := motor.AgregarItem(context.Background(), b, "P1", dec("8"), dec("20.00"))
	require.NoError(t, err)

	// Yape se capturó antes que efectivo; la relectura respeta ese orden
	// aunque no sea el alfabético.
	_, err = motor.ReconciliarPagos(b, []entity.Pago{
		{Metodo: entity.MetodoYape, Monto: dec("100.00")},
		{Metodo: entity.MetodoEfectivo, Monto: dec("60.00")},
	})
	require.NoError(t, err)
	venta, err := motor.Commit(context.Background(), b, "u1")
	require.NoError(t, err)

	leida, err := motor.GetVenta(context.Background(), venta.ID)
	require.NoError(t, err)
	require.Len(t, leida.Pagos, 2)
	assert.Equal(t, entity.MetodoYape, leida.Pagos[0].Metodo)
	assert.Equal(t, entity.MetodoEfectivo, leida.Pagos[1].Metodo)
}

func TestCommit_RevalidaContraLecturasFrescas(t *testing.T) {
	s, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	_, err := motor.AgregarItem(context.Background(), b, "P1", dec("8"), dec("20.00"))
	require.NoError(t, err)
	_, err = motor.ReconciliarPagos(b, []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("160.00")}})
	require.NoError(t, err)

	// Entre el preview y el commit, otro commit consumió casi todo B2.
	s.lotes["B2"].StockRestante = dec("1")
	s.productos["P1"].StockActual = dec("6")

	_, err = motor.Commit(context.Background(), b, "u1")
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "B2", insuf.LoteID, "nombra el lote ofendido")
	assert.True(t, insuf.Faltante.Equal(dec("2")))

	// Sin efecto parcial: nada cambió y el borrador vuelve a ser editable.
	assert.True(t, s.lotes["B1"].StockRestante.Equal(dec("5")))
	assert.Empty(t, s.movimientos)
	assert.Empty(t, s.ventas)
	assert.Equal(t, entity.EstadoBorrador, b.Estado)
}

func TestCommit_PagosDesbalanceadosRechazado(t *testing.T) {
	s, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	_, err := motor.AgregarItem(context.Background(), b, "P1", dec("5"), dec("20.00"))
	require.NoError(t, err)
	b.Pagos = []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("99.99")}}

	_, err = motor.Commit(context.Background(), b, "u1")
	var imb *domain.PaymentImbalanceError
	require.ErrorAs(t, err, &imb)
	assert.True(t, imb.Diferencia.Equal(dec("0.01")))
	assert.Empty(t, s.ventas)
	assert.True(t, s.lotes["B1"].StockRestante.Equal(dec("5")))
}

func TestCommit_BorradorVacioRechazado(t *testing.T) {
	_, motor := escenarioBase(t)
	b := borradorVenta(t, motor)

	_, err := motor.Commit(context.Background(), b, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommit_ModificacionConcurrenteEmerge(t *testing.T) {
	s, _ := escenarioBase(t)
	motor := ventas.NewMotorVentas(conflictTxRunner{}, s, productoStore{s}, ventaStore{s}, pagoStore{s}, movStore{s})
	b, err := motor.NuevoBorrador(entity.DocVenta, "", "u1")
	require.NoError(t, err)
	_, err = motor.AgregarItem(context.Background(), b, "P1", dec("2"), dec("20.00"))
	require.NoError(t, err)
	_, err = motor.ReconciliarPagos(b, []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("40.00")}})
	require.NoError(t, err)

	_, err = motor.Commit(context.Background(), b, "u1")
	var conc *domain.ConcurrentModificationError
	require.ErrorAs(t, err, &conc)
	assert.Equal(t, entity.EstadoBorrador, b.Estado, "el caller puede reintentar el borrador completo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo cotización: borrador → pendiente → completada / anulada
// ──────────────────────────────────────────────────────────────────────────────

func TestCotizacion_CommitYConfirmacion(t *testing.T) {
	s, motor := escenarioBase(t)
	b, err := motor.NuevoBorrador(entity.DocCotizacion, "Taller Rojas", "u1")
	require.NoError(t, err)

	_, err = motor.AgregarItem(context.Background(), b, "P1", dec("4"), dec("20.00"))
	require.NoError(t, err)

	// El commit de la cotización no exige pagos: queda pendiente.
	cot, err := motor.Commit(context.Background(), b, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPendiente, cot.Estado)
	assert.True(t, s.lotes["B1"].StockRestante.Equal(dec("1")))
	assert.Empty(t, s.pagos[cot.ID])
	assert.Equal(t, entity.MovimientoCotizacion, s.movimientos[0].Tipo)

	// La confirmación sí está gateada por el reconciliador.
	_, err = motor.ConfirmarCotizacion(context.Background(), cot.ID,
		[]entity.Pago{{Metodo: entity.MetodoTarjeta, Monto: dec("70.00")}}, "u1")
	var imb *domain.PaymentImbalanceError
	require.ErrorAs(t, err, &imb)

	conf, err := motor.ConfirmarCotizacion(context.Background(), cot.ID,
		[]entity.Pago{{Metodo: entity.MetodoTarjeta, Monto: dec("80.00")}}, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoCompletada, conf.Estado)
	require.Len(t, s.pagos[cot.ID], 1)

	// completada es final.
	_, err = motor.ConfirmarCotizacion(context.Background(), cot.ID,
		[]entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: dec("80.00")}}, "u1")
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestCotizacion_Anular(t *testing.T) {
	s, motor := escenarioBase(t)
	b, err := motor.NuevoBorrador(entity.DocCotizacion, "", "u1")
	require.NoError(t, err)
	_, err = motor.AgregarItem(context.Background(), b, "P1", dec("1"), dec("20.00"))
	require.NoError(t, err)
	cot, err := motor.Commit(context.Background(), b, "u1")
	require.NoError(t, err)

	require.NoError(t, motor.AnularCotizacion(context.Background(), cot.ID))
	assert.Equal(t, entity.EstadoAnulada, s.ventas[cot.ID].Estado)

	// anulada es final.
	assert.ErrorIs(t, motor.AnularCotizacion(context.Background(), cot.ID), domain.ErrEstadoInvalido)
}

package pagos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/pagos"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReconciliador_ArrancaConTotalEnEfectivo(t *testing.T) {
	r := pagos.NewReconciliador(dec("150.00"))

	lista := r.Pagos()
	require.Len(t, lista, 1)
	assert.Equal(t, entity.MetodoEfectivo, lista[0].Metodo)
	assert.True(t, lista[0].Monto.Equal(dec("150.00")))
	assert.True(t, r.Balanceado())
}

func TestReconciliador_MetodoDuplicadoRechazado(t *testing.T) {
	r := pagos.NewReconciliador(dec("100.00"))

	require.NoError(t, r.AgregarMetodo(entity.MetodoYape))
	assert.ErrorIs(t, r.AgregarMetodo(entity.MetodoYape), domain.ErrDuplicate)
	assert.ErrorIs(t, r.AgregarMetodo("cheque"), domain.ErrInvalidInput)
}

func TestReconciliador_NoQuitaElUltimoMetodo(t *testing.T) {
	r := pagos.NewReconciliador(dec("100.00"))

	assert.ErrorIs(t, r.QuitarMetodo(entity.MetodoEfectivo), domain.ErrInvalidInput)

	require.NoError(t, r.AgregarMetodo(entity.MetodoTarjeta))
	require.NoError(t, r.QuitarMetodo(entity.MetodoEfectivo))
	require.Len(t, r.Pagos(), 1)
}

func TestReconciliador_MontoNegativoRechazado(t *testing.T) {
	r := pagos.NewReconciliador(dec("100.00"))
	assert.ErrorIs(t, r.FijarMonto(entity.MetodoEfectivo, dec("-1")), domain.ErrInvalidInput)
}

func TestReconciliador_DistribuirRestanteAlUltimoMetodo(t *testing.T) {
	r := pagos.NewReconciliador(dec("100.00"))
	require.NoError(t, r.FijarMonto(entity.MetodoEfectivo, dec("60.00")))
	require.NoError(t, r.AgregarMetodo(entity.MetodoPlin))

	r.DistribuirRestante()

	lista := r.Pagos()
	require.Len(t, lista, 2)
	assert.True(t, lista[1].Monto.Equal(dec("40.00")), "el faltante va al último método listado")
	assert.True(t, r.Balanceado())
}

func TestReconciliador_FronteraDeTolerancia(t *testing.T) {
	// total = 100.00, métodos = [60.00, 39.99]: diferencia exactamente 0.01
	// debe rechazarse; solo pasa una diferencia estrictamente menor a 0.01.
	r := pagos.NewReconciliador(dec("100.00"))
	require.NoError(t, r.FijarMonto(entity.MetodoEfectivo, dec("60.00")))
	require.NoError(t, r.AgregarMetodo(entity.MetodoTarjeta))
	require.NoError(t, r.FijarMonto(entity.MetodoTarjeta, dec("39.99")))

	assert.False(t, r.Balanceado())
	_, err := r.Confirmar()
	require.Error(t, err)

	var imb *domain.PaymentImbalanceError
	require.ErrorAs(t, err, &imb)
	assert.True(t, imb.Esperado.Equal(dec("100.00")))
	assert.True(t, imb.Actual.Equal(dec("99.99")))
	assert.True(t, imb.Diferencia.Equal(dec("0.01")))

	// Diferencia de 0.005 sí pasa.
	require.NoError(t, r.FijarMonto(entity.MetodoTarjeta, dec("39.995")))
	assert.True(t, r.Balanceado())
	_, err = r.Confirmar()
	assert.NoError(t, err)
}

func TestReconciliador_ConfirmarDescartaMontosCero(t *testing.T) {
	r := pagos.NewReconciliador(dec("80.00"))
	require.NoError(t, r.AgregarMetodo(entity.MetodoTransferencia)) // queda en 0

	finales, err := r.Confirmar()
	require.NoError(t, err)
	require.Len(t, finales, 1)
	assert.Equal(t, entity.MetodoEfectivo, finales[0].Metodo)
}

func TestReconciliador_SumaCeroRechazada(t *testing.T) {
	r := pagos.NewReconciliador(decimal.Zero)
	_, err := r.Confirmar()
	var imb *domain.PaymentImbalanceError
	require.ErrorAs(t, err, &imb)
}

func TestValidar_DesdePaymentDataDelCaller(t *testing.T) {
	finales, err := pagos.Validar(dec("120.00"), []entity.Pago{
		{Metodo: entity.MetodoYape, Monto: dec("70.00")},
		{Metodo: entity.MetodoEfectivo, Monto: dec("50.00")},
	})
	require.NoError(t, err)
	require.Len(t, finales, 2)
	assert.Equal(t, entity.MetodoYape, finales[0].Metodo, "conserva el orden de captura")

	_, err = pagos.Validar(dec("120.00"), []entity.Pago{
		{Metodo: entity.MetodoYape, Monto: dec("70.00")},
		{Metodo: entity.MetodoYape, Monto: dec("50.00")},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "método repetido en paymentData")
}

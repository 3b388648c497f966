package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	_ ventas.LotLedger         = (*LoteCache)(nil)
	_ ventas.LedgerInvalidator = (*LoteCache)(nil)
)

const prefijoLedger = "ledger:lotes:"

// LoteCache es un cache read-through sobre Redis para el lot ledger.
// Todo fallo de Redis degrada a leer PostgreSQL directamente; el cache nunca
// bloquea un preview. Los commits invalidan las claves de los productos
// afectados vía Invalidar.
type LoteCache struct {
	repo   repository.LoteRepository
	client *redis.Client
	ttl    time.Duration
}

// NewLoteCache envuelve el repositorio de lotes con un cache Redis.
// Con client nil opera en modo directo (sin cache), útil en desarrollo.
func NewLoteCache(repo repository.LoteRepository, client *redis.Client, ttl time.Duration) *LoteCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LoteCache{repo: repo, client: client, ttl: ttl}
}

// ListarActivos devuelve los lotes elegibles en orden FIFO, sirviendo del
// cache cuando hay entrada fresca.
func (c *LoteCache) ListarActivos(productoID string) ([]*entity.Lote, error) {
	if c.client == nil {
		return c.repo.ListarActivos(productoID)
	}

	ctx := context.Background()
	key := prefijoLedger + productoID

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var lotes []*entity.Lote
		if err := json.Unmarshal(payload, &lotes); err == nil {
			return lotes, nil
		}
		// entrada corrupta: descartarla y releer de BD
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		log.Warn().Err(err).Str("producto_id", productoID).Msg("cache ledger no disponible, leyendo BD")
	}

	lotes, err := c.repo.ListarActivos(productoID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(lotes); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("producto_id", productoID).Msg("no se pudo poblar cache ledger")
		}
	}
	return lotes, nil
}

// CostoCabezaFIFO devuelve el costo del lote más antiguo, reutilizando la
// entrada cacheada del ledger cuando existe.
func (c *LoteCache) CostoCabezaFIFO(productoID string) (decimal.Decimal, error) {
	lotes, err := c.ListarActivos(productoID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(lotes) == 0 {
		return decimal.Zero, nil
	}
	return lotes[0].PrecioCompraUnitario, nil
}

// Invalidar descarta las entradas del ledger de los productos dados.
// Se invoca tras cada commit que consumió stock.
func (c *LoteCache) Invalidar(productoIDs ...string) {
	if c.client == nil || len(productoIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(productoIDs))
	for _, id := range productoIDs {
		keys = append(keys, prefijoLedger+id)
	}
	if err := c.client.Del(context.Background(), keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("productos", productoIDs).Msg("no se pudo invalidar cache ledger")
	}
}

// Package alerts notifica a los responsables de stock cuando un ítem queda bajo su umbral
// o se acerca a su fecha de vencimiento.
package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/clinic-stock-api/internal/application/ports"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

// Config ventanas de alerta.
type Config struct {
	ExpiryWindowMonths int           // vencimiento <= ahora + N meses dispara expiring_soon
	Cooldown           time.Duration // no repetir la misma alerta del mismo ítem antes de este plazo
	DispatchTimeout    time.Duration // tiempo máximo de un Dispatch en segundo plano
}

// DefaultConfig 3 meses, 24 h de cooldown, 30 s por dispatch.
func DefaultConfig() Config {
	return Config{ExpiryWindowMonths: 3, Cooldown: 24 * time.Hour, DispatchTimeout: 30 * time.Second}
}

// AlertUseCase revisa un ítem y notifica a los stock controllers y al dueño.
type AlertUseCase struct {
	itemRepo  repository.StockItemRepository
	userRepo  repository.UserRepository
	alertRepo repository.StockAlertRepository
	notifier  ports.Notifier
	cfg       Config
	log       zerolog.Logger
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	itemRepo repository.StockItemRepository,
	userRepo repository.UserRepository,
	alertRepo repository.StockAlertRepository,
	notifier ports.Notifier,
	cfg Config,
	log zerolog.Logger,
) *AlertUseCase {
	def := DefaultConfig()
	if cfg.ExpiryWindowMonths <= 0 {
		cfg.ExpiryWindowMonths = def.ExpiryWindowMonths
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = def.DispatchTimeout
	}
	return &AlertUseCase{
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		alertRepo: alertRepo,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AlertUseCase) WithClock(now func() time.Time) *AlertUseCase {
	uc.now = now
	return uc
}

// ExpiryCutoff fecha límite de la ventana de vencimiento a partir de now.
func (uc *AlertUseCase) ExpiryCutoff(now time.Time) time.Time {
	return now.AddDate(0, uc.cfg.ExpiryWindowMonths, 0)
}

// CheckLowStock notifica si el ítem está en o bajo su umbral. Devuelve true si se envió una alerta.
// Si el ítem ya no está bajo, resuelve las alertas de stock activas.
func (uc *AlertUseCase) CheckLowStock(ctx context.Context, stockItemID string) (bool, error) {
	item, err := uc.loadItem(ctx, stockItemID)
	if err != nil {
		return false, err
	}
	if !item.IsLowStock() {
		return false, uc.alertRepo.Resolve(ctx, item.ID, entity.AlertTypeLowStock, entity.AlertTypeOutOfStock)
	}

	alertType := entity.AlertTypeLowStock
	title := fmt.Sprintf("Alerta de stock bajo: %s", item.Name)
	body := fmt.Sprintf("El ítem %q tiene %d unidades (umbral %d). Considere reponer.",
		item.Name, item.Quantity, item.LowStockThreshold)
	if item.IsOutOfStock() {
		alertType = entity.AlertTypeOutOfStock
		title = fmt.Sprintf("Sin stock: %s", item.Name)
		body = fmt.Sprintf("El ítem %q se agotó (umbral %d). Reponer con urgencia.", item.Name, item.LowStockThreshold)
	}
	return uc.notifyOnce(ctx, item, alertType, title, body)
}

// CheckExpiring notifica si el ítem venció o vence dentro de la ventana configurada.
func (uc *AlertUseCase) CheckExpiring(ctx context.Context, stockItemID string) (bool, error) {
	item, err := uc.loadItem(ctx, stockItemID)
	if err != nil {
		return false, err
	}
	if item.ExpirationDate == nil {
		return false, nil
	}
	now := uc.now()
	exp := *item.ExpirationDate
	if exp.After(uc.ExpiryCutoff(now)) {
		return false, uc.alertRepo.Resolve(ctx, item.ID, entity.AlertTypeExpiringSoon, entity.AlertTypeExpired)
	}

	date := exp.Format("2006-01-02")
	if !exp.After(now) {
		return uc.notifyOnce(ctx, item, entity.AlertTypeExpired,
			fmt.Sprintf("Ítem vencido: %s", item.Name),
			fmt.Sprintf("El ítem %q (lote %s) venció el %s. Retirar del inventario.", item.Name, item.BatchNumber, date))
	}
	return uc.notifyOnce(ctx, item, entity.AlertTypeExpiringSoon,
		fmt.Sprintf("Próximo a vencer: %s", item.Name),
		fmt.Sprintf("El ítem %q (lote %s) vence el %s.", item.Name, item.BatchNumber, date))
}

// Dispatch ejecuta ambas revisiones en segundo plano con su propio timeout.
// Los errores se registran en el log; nunca afectan a la operación que lo invoca.
func (uc *AlertUseCase) Dispatch(stockItemID string) {
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.DispatchTimeout)
		defer cancel()

		if _, err := uc.CheckLowStock(ctx, stockItemID); err != nil {
			uc.log.Error().Err(err).Str("stock_item_id", stockItemID).Msg("revisión de stock bajo fallida")
		}
		if _, err := uc.CheckExpiring(ctx, stockItemID); err != nil {
			uc.log.Error().Err(err).Str("stock_item_id", stockItemID).Msg("revisión de vencimiento fallida")
		}
	}()
}

// Wait espera a que terminen los Dispatch en curso (apagado ordenado y tests).
func (uc *AlertUseCase) Wait() { uc.wg.Wait() }

func (uc *AlertUseCase) loadItem(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("alertas: obtener ítem %s: %w", id, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// notifyOnce envía la alerta salvo que la misma ya se haya enviado dentro del cooldown.
// Los fallos de envío por destinatario se registran y no detienen al resto.
func (uc *AlertUseCase) notifyOnce(ctx context.Context, item *entity.StockItem, alertType, title, body string) (bool, error) {
	now := uc.now()
	active, err := uc.alertRepo.GetActive(ctx, item.ID, alertType)
	if err != nil {
		return false, fmt.Errorf("alertas: consultar alerta activa: %w", err)
	}
	if active != nil && active.LastSentAt != nil && now.Sub(*active.LastSentAt) < uc.cfg.Cooldown {
		uc.log.Debug().Str("stock_item_id", item.ID).Str("alert_type", alertType).Msg("alerta en cooldown")
		return false, nil
	}

	controllers, err := uc.userRepo.ListStockControllers(ctx)
	if err != nil {
		return false, fmt.Errorf("alertas: listar stock controllers: %w", err)
	}
	for _, sc := range controllers {
		if sc.EmailEnabled && sc.Email != "" {
			if err := uc.notifier.SendEmail(ctx, sc.Email, title, body); err != nil {
				uc.log.Warn().Err(err).Str("user_id", sc.UserID).Msg("no se pudo enviar email de alerta")
			}
		}
		if sc.SMSEnabled && sc.PhoneNumber != "" {
			if err := uc.notifier.SendSMS(ctx, sc.PhoneNumber, title+". "+body); err != nil {
				uc.log.Warn().Err(err).Str("user_id", sc.UserID).Msg("no se pudo enviar SMS de alerta")
			}
		}
	}
	if err := uc.notifier.NotifyOwner(ctx, title, body); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo notificar al dueño")
	}

	if err := uc.alertRepo.MarkSent(ctx, item.ID, alertType, now); err != nil {
		return true, fmt.Errorf("alertas: registrar envío: %w", err)
	}
	uc.log.Info().
		Str("stock_item_id", item.ID).
		Str("alert_type", alertType).
		Int("recipients", len(controllers)).
		Msg("alerta de stock enviada")
	return true, nil
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/petcare-pro/pkg/logger"
)

// Canales NOTIFY emitidos por los triggers de scripts/schema.sql.
const (
	channelOrdersChanged       = "orders_changed"
	channelAppointmentsChanged = "appointments_changed"
)

// watchChannel abre una conexión dedicada en LISTEN sobre el canal dado y
// devuelve un canal Go que emite una señal por cada NOTIFY. La señal colapsa
// (buffer 1): a los consumidores solo les interesa "algo cambió", no cuántas
// veces. Reconecta con backoff si la conexión se cae; cierra el canal cuando
// ctx termina.
func watchChannel(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger, channel string) (<-chan struct{}, error) {
	connConfig := pool.Config().ConnConfig.Copy()

	conn, err := connectAndListen(ctx, connConfig, channel)
	if err != nil {
		return nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = conn.Close(closeCtx)
		}()

		for {
			_, err := conn.WaitForNotification(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("conexión LISTEN perdida; reconectando")
				conn = reconnect(ctx, connConfig, channel, log)
				if conn == nil {
					return
				}
				// La caída pudo tragarse notificaciones: señalizar por las dudas
				signal(ch)
				continue
			}
			signal(ch)
		}
	}()
	return ch, nil
}

func connectAndListen(ctx context.Context, cfg *pgx.ConnConfig, channel string) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
		return nil, err
	}
	return conn, nil
}

// reconnect reintenta la conexión LISTEN con backoff lineal hasta lograrla o
// hasta que ctx termine.
func reconnect(ctx context.Context, cfg *pgx.ConnConfig, channel string, log *logger.Logger) *pgx.Conn {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		conn, err := connectAndListen(ctx, cfg, channel)
		if err == nil {
			log.Info().Str("channel", channel).Msg("conexión LISTEN restablecida")
			return conn
		}
		log.Warn().Err(err).Str("channel", channel).Msg("reintento de LISTEN falló")
		if backoff < 30*time.Second {
			backoff += time.Second
		}
	}
}

// signal envía sin bloquear: si ya hay una señal pendiente, la nueva colapsa.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

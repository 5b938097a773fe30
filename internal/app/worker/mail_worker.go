package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"career_path/internal/app/mail"
	"career_path/internal/platform/config"

	"github.com/redis/go-redis/v9"
	gomail "github.com/wneessen/go-mail"
)

// MailWorker drains the welcome-mail outbox and delivers each message
// over SMTP. Delivery failures are logged and the message is dropped;
// the registration that queued it has long since completed.
type MailWorker struct {
	rdb *redis.Client
}

func NewMailWorker(rdb *redis.Client) *MailWorker {
	return &MailWorker{rdb: rdb}
}

func (w *MailWorker) Start(ctx context.Context) {
	log.Println("Mail worker started, listening to queue:", config.AppConfig.MailQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Mail worker stopping...")
			return
		default:
			// Blocking pop from Redis queue
			res, err := w.rdb.BRPop(ctx, 0*time.Second, config.AppConfig.MailQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Mail worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.MailQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// res is an array: [queueName, value]
			if len(res) < 2 || res[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}

			var msg mail.Message
			if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
				log.Printf("ERROR: Dropping malformed outbox message: %v", err)
				continue
			}

			if err := w.deliver(ctx, msg); err != nil {
				log.Printf("ERROR: Failed to send welcome email %s to %s: %v", msg.ID, msg.To, err)
				continue
			}
			log.Printf("Welcome email %s sent to %s", msg.ID, msg.To)
		}
	}
}

func (w *MailWorker) deliver(ctx context.Context, msg mail.Message) error {
	cfg := config.AppConfig

	m := gomail.NewMsg()
	if err := m.From(cfg.MailFrom); err != nil {
		return err
	}
	if err := m.To(msg.To); err != nil {
		return err
	}
	m.Subject(mail.WelcomeSubject)
	m.SetBodyString(gomail.TypeTextPlain, mail.WelcomeBody(msg.Name))

	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUsername),
		gomail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}

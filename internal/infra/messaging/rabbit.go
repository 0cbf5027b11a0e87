package messaging

import (
	"context"
	"encoding/json"
	"time"

	"bookstore/internal/domain/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// 送信だけできればいい
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Rabbit struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial して durable なキューを宣言する。
func Dial(url string, queue string) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	r := &Rabbit{conn: conn, ch: ch}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Rabbit) Channel() *amqp.Channel { return r.ch }

func (r *Rabbit) Close() {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

// 購入イベント
type BookBought struct {
	ISBN      string    `json:"isbn"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int64     `json:"quantity"`
	BoughtAt  time.Time `json:"bought_at"`
}

// BookBoughtPublisher はコミット済みの購入ごとに book.bought を送る。
type BookBoughtPublisher struct {
	pub   Publisher
	queue string
	now   func() time.Time
}

func NewBookBoughtPublisher(pub Publisher, queue string) *BookBoughtPublisher {
	return &BookBoughtPublisher{
		pub:   pub,
		queue: queue,
		now:   time.Now,
	}
}

// BookBought は購入確定後に呼ばれるので、失敗してもログだけ
func (p *BookBoughtPublisher) BookBought(ctx context.Context, book model.Book, quantity int64) {
	body, err := json.Marshal(BookBought{
		ISBN:      book.ISBN,
		UnitPrice: book.Price,
		Quantity:  quantity,
		BoughtAt:  p.now().UTC(),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("isbn", book.ISBN).Msg("marshal book.bought failed")
		return
	}

	err = p.pub.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("isbn", book.ISBN).Msg("publish book.bought failed")
	}
}

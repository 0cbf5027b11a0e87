package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bookstore/internal/config"
	"bookstore/internal/handler"
	"bookstore/internal/infra/cache"
	"bookstore/internal/infra/db"
	"bookstore/internal/infra/logging"
	"bookstore/internal/infra/messaging"
	"bookstore/internal/infra/process"
	infraRepo "bookstore/internal/infra/repository"
	"bookstore/internal/server"
	"bookstore/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	//.envは無くてもいい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.Setup(cfg.IsDev())

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	//Repository（GORM実装）生成
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//購入処理（RabbitMQがあればcommit後にイベントも送る）
	buy := process.NewStockBuyBookProcess(txm, process.UUIDGenerator{})
	var bought []usecase.PurchaseListener
	if cfg.RabbitURL != "" {
		rabbit, err := messaging.Dial(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbit dial")
		}
		defer rabbit.Close()
		bought = append(bought, messaging.NewBookBoughtPublisher(rabbit.Channel(), cfg.RabbitQueue))
	}

	//見積もりはキャッシュ経由、購入はDBを直接見る
	var quoteLookup usecase.BookLookup = bookRepo
	var listeners []usecase.StockListener
	if cfg.BookCacheSize > 0 {
		c := cache.NewBookLookupCache(bookRepo, cfg.BookCacheSize, cfg.BookCacheTTL)
		quoteLookup = c
		listeners = append(listeners, c)
	}

	//Usecase生成
	quoteUC := usecase.NewCartPricer(quoteLookup, buy)
	checkoutUC := usecase.NewCheckoutUsecase(bookRepo, txm, buy, bought...)
	bookUC := usecase.NewBookUsecase(bookRepo, txm, listeners...)

	//Handler生成
	bookH := handler.NewBookHandler(bookUC)
	cartH := handler.NewCartHandler(quoteUC, checkoutUC)

	//Server起動
	addr := cfg.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := server.New(cfg, logger, bookH, cartH)
	log.Info().Str("addr", addr).Str("db", cfg.DBDriver).Msg("starting bookstore api")
	if err := server.Start(ctx, e, addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

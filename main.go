package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"example.com/yatube/cmd/server"
	"example.com/yatube/cmd/worker"
	appkafka "example.com/yatube/internal/broker"
	"example.com/yatube/internal/cache"
	config "example.com/yatube/internal/init"
	"example.com/yatube/internal/media"
	"example.com/yatube/internal/store"
)

func main() {
	// Initialize application configuration
	cfg := config.Init()
	mode := cfg.Mode

	// Initialize Cassandra store connection
	st, err := store.New()
	if err != nil {
		log.Fatalf("Cassandra connection failed: %v", err)
	}
	defer st.Close()

	// Configure Kafka client parameters
	kafkaCfg := appkafka.KafkaConfig{
		Brokers:      []string{cfg.KafkaBroker},
		Topic:        cfg.KafkaTopic,
		Partition:    cfg.KafkaPartition,
		GroupID:      cfg.KafkaGroupID,
		WriteTimeout: cfg.KafkaWriteTO,
	}

	// Setup OS signal handling for graceful shutdown (SIGINT, SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "server":
		kafkaWriter, err := appkafka.NewKafkaWriter(kafkaCfg)
		if err != nil {
			log.Fatalf("Kafka writer init failed: %v", err)
		}
		defer kafkaWriter.Close()

		pages, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Redis init failed: %v", err)
		}
		defer pages.Close()

		mediaStore, err := media.NewStorage(cfg.MediaDir)
		if err != nil {
			log.Fatalf("Media storage init failed: %v", err)
		}

		s := server.New(st, kafkaWriter, pages, mediaStore, cfg)
		server.Run(ctx, s, cfg.ServerAddr)
	case "worker":
		kafkaReader := appkafka.NewKafkaReader(kafkaCfg)
		defer kafkaReader.Close()

		w := worker.New(st, kafkaReader, 0, 0)
		w.Run(ctx)
	default:
		log.Fatalf("unknown mode: %s", mode)
	}

	log.Println("Shutdown completed")
}

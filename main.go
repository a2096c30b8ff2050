package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/db"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/fantasypros"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/sleeper"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/rankcache"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("error parsing REDIS_DB: %v", err)
		}
	}

	clock := clock.New()
	database, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	espnClient, err := espn.New()
	if err != nil {
		log.Fatalf("error creating espn client: %v", err)
	}

	sleeperClient, err := sleeper.New()
	if err != nil {
		log.Fatalf("error creating sleeper client: %v", err)
	}

	fpClient, err := fantasypros.New()
	if err != nil {
		log.Fatalf("error creating fantasypros client: %v", err)
	}

	kv, err := rankcache.NewRedisKV(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), redisDB)
	if err != nil {
		log.Fatalf("cannot connect to rank KV: %v", err)
	}
	ranks := rankcache.New(kv, fpClient)

	ctrl, err := controller.New(clock, database, espnClient, sleeperClient, fpClient, ranks)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl, web.Config{
		FantasyProsKey: os.Getenv("FANTASYPROS_API_KEY"),
		Proxies:        web.ParseProxyRules(os.Getenv("PROXY_RULES")),
	})
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	database.Close()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}

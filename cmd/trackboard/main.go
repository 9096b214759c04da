package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/nittiva/trackboard/pkg/autosync"
	"github.com/nittiva/trackboard/pkg/client"
	"github.com/nittiva/trackboard/pkg/config"
	"github.com/nittiva/trackboard/pkg/errnotifier"
	"github.com/nittiva/trackboard/pkg/field"
	"github.com/nittiva/trackboard/pkg/storage"
	"github.com/nittiva/trackboard/pkg/task"
	"github.com/nittiva/trackboard/pkg/timer"
)

const version = "0.1.0"

// resolveSchemaPath anchors a relative schema file path at the workdir.
func resolveSchemaPath(workDir, schemaFile string) string {
	if filepath.IsAbs(schemaFile) {
		return schemaFile
	}
	return filepath.Join(workDir, schemaFile)
}

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	rand.Seed(time.Now().Unix())

	env := config.Flags{}
	config.ParseFlags(&env, os.Args)

	if env.ShowVersion {
		fmt.Printf("trackboard %s\n", version)
		return
	}

	var notifier task.ErrorNotifier
	if env.BugsnagAPIKey != "" {
		notifier = errnotifier.NewBugSnagNotifier(env.BugsnagAPIKey, env.Environment)
	} else {
		notifier = errnotifier.NewDummyNotifier()
	}

	var store storage.KV
	if env.DbConnString != "" {
		db, err := sql.Open("postgres", env.DbConnString)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		store = storage.NewPostgres(db)
	} else {
		log.Println("no db_conn_string given, time entries will not survive a restart")
		store = storage.NewInMemory()
	}

	api := client.NewClient(env.APIHost)
	if env.AuthToken != "" {
		api.WithAuthToken(env.AuthToken)
	}
	api.WithWorkspace(env.WorkspaceID)

	if err := api.Ping(); err != nil {
		log.Println("backend not reachable, running on local state only:", err)
	}

	tracker := timer.NewTracker(store)
	if err := tracker.Load(); err != nil {
		log.Println("could not load time entries:", err)
	}
	if env.Debug {
		tracker.SetTickFunc(func(elapsed time.Duration) {
			log.Println("tracking", timer.FormatDuration(elapsed))
		})
	}

	cache := task.NewCache(api, notifier)
	if err := cache.Refresh(""); err != nil {
		log.Println("initial task refresh failed:", err)
	}

	if env.UserID != "" {
		current := task.User{ID: env.UserID, Role: env.UserRole}
		if users, err := api.GetUsers(); err != nil {
			log.Println("could not fetch users:", err)
		} else {
			pickable := task.AssignableUsers(users, &current)
			log.Printf("%d of %d users assignable for user %s", len(pickable), len(users), env.UserID)
		}
	}

	seed := field.DefaultFields()
	if env.SchemaFile != "" {
		loaded, err := field.LoadSchema(resolveSchemaPath(env.WorkDir, env.SchemaFile))
		if err != nil {
			log.Fatal(err)
		}
		seed = loaded
	}
	registry := field.NewRegistry(cache, seed)
	log.Printf("field schema loaded with %d fields", len(registry.Fields()))

	syncService := autosync.NewService(cache, notifier, time.Duration(env.RefreshSec)*time.Second, env.Debug)
	syncService.Start()

	log.Printf("trackboard (PID: %d) is running\n=> Ctrl-C to shutdown", os.Getpid())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	syncService.Stop()
	// finalize a still-running entry so no tracked time is lost on shutdown
	if done, err := tracker.Stop(); err != nil {
		log.Println("could not persist final time entry:", err)
	} else if done != nil {
		log.Println("closed running entry at", timer.FormatMilliseconds(done.Duration))
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"flowdesk/account"
	"flowdesk/bizerror"
	"flowdesk/common"
	"flowdesk/domain/flow"
	"flowdesk/domain/instance"
	"flowdesk/domain/task"
	"flowdesk/infra/ratelimit"
	"flowdesk/infra/tracing"
	"flowdesk/misc"
	"flowdesk/persistence"
	"flowdesk/servehttp"
	"flowdesk/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().Int("http-port", 8080, "port for rest endpoints")
	cmd.Flags().String("database-url", "", "mysql connection string, e.g. root:root@(127.0.0.1:3306)/flowdesk?charset=utf8mb4&parseTime=True&loc=Local")
	cmd.Flags().String("jwt-secret", "", "secret used to sign bearer tokens")
	cmd.Flags().Duration("token-expiration", session.DefaultTokenExpiration, "bearer token lifetime")
	cmd.Flags().Bool("seed", false, "seed demo data and exit")
	return viper.BindPFlags(cmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	secret := viper.GetString("jwt-secret")
	if secret == "" {
		common.Log.Fatal("jwt-secret is not configured")
	}
	session.TokenSecret = []byte(secret)
	session.TokenExpiration = viper.GetDuration("token-expiration")

	dbConfig := &persistence.DatabaseConfig{DriverType: "mysql", DriverArgs: viper.GetString("database-url")}
	if dbConfig.DriverArgs == "" {
		parsed, err := persistence.ParseDatabaseConfigFromEnv()
		if err != nil {
			common.Log.Fatalf("parse database config failed %v", err)
		}
		dbConfig = parsed
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			common.Log.Fatalf("failed to prepare database %v", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		common.Log.Fatalf("database connection failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err := ds.GormDB(context.Background()).AutoMigrate(
		&account.User{}, &flow.Workflow{}, &instance.WorkflowInstance{}, &task.WorkflowTask{}).Error
	if err != nil {
		common.Log.Fatalf("database migration failed %v", err)
	}

	if viper.GetBool("seed") {
		if err := seedDemoData(ds); err != nil {
			common.Log.Fatalf("seed failed %v", err)
		}
		common.Log.Info("seed completed successfully")
		return nil
	}

	closer, err := tracing.SetupTracer()
	if err != nil {
		common.Log.Fatalf("tracer setup failed %v", err)
	}
	defer closer.Close()

	engine := gin.New()
	engine.Use(gin.Logger(), tracing.TracingIngress(), bizerror.ErrorHandling())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "flowdesk api", "status": "running"})
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, misc.Failure("Route not found"))
	})

	apiLimit := ratelimit.NewAPIRateLimit()
	account.RegisterAuthHandler(engine, apiLimit)
	servehttp.RegisterWorkflowHandler(engine, apiLimit, session.AuthFilter())
	servehttp.RegisterInstanceHandler(engine, apiLimit, session.AuthFilter())

	servehttp.StartHTTPServer(engine, fmt.Sprintf(":%d", viper.GetInt("http-port")))
	return nil
}

func main() {
	cmd := &cobra.Command{
		Use:   "flowdesk",
		Short: "crud backend for workflow definitions and their running instances",
		RunE:  run,
	}

	viper.SetEnvPrefix("FLOWDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := setupFlags(cmd); err != nil {
		common.Log.Fatalf("flag setup failed %v", err)
	}
	if err := cmd.Execute(); err != nil {
		common.Log.Fatalf("service exited with error %v", err)
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/mytheresa/interior-catalog/app/ai"
	"github.com/mytheresa/interior-catalog/app/cache"
	"github.com/mytheresa/interior-catalog/app/catalog"
	"github.com/mytheresa/interior-catalog/app/categories"
	"github.com/mytheresa/interior-catalog/app/colors"
	"github.com/mytheresa/interior-catalog/app/config"
	"github.com/mytheresa/interior-catalog/app/database"
	"github.com/mytheresa/interior-catalog/app/generation"
	"github.com/mytheresa/interior-catalog/app/imageproc"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/materials"
	"github.com/mytheresa/interior-catalog/app/storage"
	"github.com/mytheresa/interior-catalog/app/uploads"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

const shutdownTimeout = 15 * time.Second

// App owns the long-lived resources behind the HTTP server.
type App struct {
	cfg     *config.Config
	DB      *gorm.DB
	Cache   *cache.Cache
	Storage storage.Storage
	Handler http.Handler

	closeDB func()
}

// Open connects to the database, migrates the schema and wires every
// handler from cfg.
func Open(cfg *config.Config) (*App, error) {
	db, closeDB, err := database.New(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	kv, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	store, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		kv.Close()
		closeDB()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	app := &App{cfg: cfg, DB: db, Cache: kv, Storage: store, closeDB: closeDB}
	app.Handler = app.router()
	return app, nil
}

func (a *App) router() http.Handler {
	v := validator.New()
	images := imageproc.NewProcessor(a.cfg.Upload.ImageQuality).WithMaxPixels(a.cfg.Upload.MaxPixels)

	categoryRepo := models.NewCategoriesRepository(a.DB)
	colorRepo := models.NewColorsRepository(a.DB)
	materialRepo := models.NewMaterialsRepository(a.DB)
	textureRepo := models.NewTexturesRepository(a.DB)
	styleRepo := models.NewStylesRepository(a.DB)
	roomRepo := models.NewRoomProfilesRepository(a.DB)

	gen := generation.NewService(generation.Deps{
		AI: ai.NewOpenAIClient(ai.Config{
			BaseURL:     a.cfg.AI.BaseURL,
			APIKey:      a.cfg.AI.APIKey,
			TextModel:   a.cfg.AI.TextModel,
			ImageModel:  a.cfg.AI.ImageModel,
			Temperature: a.cfg.AI.Temperature,
			Timeout:     a.cfg.AI.Timeout,
		}),
		Cache:      a.Cache,
		Storage:    a.Storage,
		Images:     images,
		Materials:  materialRepo,
		Textures:   textureRepo,
		Styles:     styleRepo,
		Categories: categoryRepo,
		Delay:      a.cfg.AI.RequestDelay,
	})

	handlers := Handlers{
		Categories: categories.NewCategoryHandler(categoryRepo, v),
		Catalog: catalog.NewCatalogHandler(catalog.Deps{
			Styles:     styleRepo,
			Rooms:      roomRepo,
			Colors:     colorRepo,
			Materials:  materialRepo,
			Categories: categoryRepo,
		}, v),
		Materials:  materials.NewMaterialHandler(materialRepo, textureRepo, v),
		Colors:     colors.NewColorHandler(colorRepo, v),
		Generation: generation.NewHandler(gen, v),
		Uploads:    uploads.NewUploadHandler(a.Storage, images, a.cfg.Upload.MaxSize),
	}

	rc := RouterConfig{
		Tenants:   models.NewTenantsRepository(a.DB),
		JWTSecret: a.cfg.Auth.JWTSecret,
	}
	if local, ok := a.Storage.(*storage.LocalStorage); ok {
		rc.Files = http.FileServer(http.Dir(local.Root()))
		if u, err := url.Parse(a.cfg.Storage.BaseURL); err == nil {
			rc.FilesPrefix = u.Path
		}
	}
	return NewRouter(Routes(handlers), rc)
}

func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		logger.Warn("closing cache failed", "error", err)
	}
	a.closeDB()
}

// Serve listens on cfg.Server.Addr until ctx is cancelled, then drains
// in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", srv.Addr, "env", a.cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

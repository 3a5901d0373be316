package app

import (
	"fmt"

	auditHTTP "github.com/finbase/securemsg/internal/audit/http"
	auditRepository "github.com/finbase/securemsg/internal/audit/repository"
	auditService "github.com/finbase/securemsg/internal/audit/service"
	auditUsecase "github.com/finbase/securemsg/internal/audit/usecase"
)

// serviceUserAgent identifies this service in audit log entries.
const serviceUserAgent = "securemsg"

// AuditRecorder returns the audit entry recorder.
func (c *Container) AuditRecorder() auditService.Recorder {
	c.auditRecorderInit.Do(func() {
		c.auditRecorder = auditService.NewRecorder(
			c.Redactor(),
			serviceUserAgent,
			c.config.IsProduction(),
		)
	})
	return c.auditRecorder
}

// AuditSigner returns the audit entry signer.
func (c *Container) AuditSigner() (auditService.Signer, error) {
	var err error
	c.auditSignerInit.Do(func() {
		c.auditSigner, err = c.initAuditSigner()
		if err != nil {
			c.initErrors["auditSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditSigner"]; exists {
		return nil, storedErr
	}
	return c.auditSigner, nil
}

// AuditLogRepository returns the audit log repository.
// Uses the configured database when the audit store is enabled, otherwise a
// bounded in-memory store.
func (c *Container) AuditLogRepository() (auditUsecase.AuditLogRepository, error) {
	var err error
	c.auditLogRepoInit.Do(func() {
		c.auditLogRepo, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepo"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepo, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUsecase.AuditUseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// AuditLogHandler returns the HTTP handler for audit log operations.
func (c *Container) AuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	var err error
	c.auditHandlerInit.Do(func() {
		c.auditLogHandler, err = c.initAuditLogHandler()
		if err != nil {
			c.initErrors["auditLogHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogHandler"]; exists {
		return nil, storedErr
	}
	return c.auditLogHandler, nil
}

// initAuditSigner creates the audit entry signer.
func (c *Container) initAuditSigner() (auditService.Signer, error) {
	keys, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for audit signer: %w", err)
	}

	return auditService.NewSigner(keys), nil
}

// initAuditLogRepository creates the audit log repository based on configuration.
func (c *Container) initAuditLogRepository() (auditUsecase.AuditLogRepository, error) {
	if !c.config.AuditStoreEnabled {
		return auditRepository.NewMemoryAuditLogRepository(auditRepository.DefaultMemoryCapacity), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditRepository.NewPostgreSQLAuditLogRepository(db), nil
	case "mysql":
		return auditRepository.NewMySQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUsecase.AuditUseCase, error) {
	signer, err := c.AuditSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit signer for audit use case: %w", err)
	}

	repo, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
	}

	useCase := auditUsecase.NewAuditUseCase(
		c.AuditRecorder(),
		signer,
		repo,
		c.Logger(),
	)

	return auditUsecase.NewAuditUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAuditLogHandler creates the audit log HTTP handler.
func (c *Container) initAuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for audit log handler: %w", err)
	}

	return auditHTTP.NewAuditLogHandler(auditUseCase, c.Logger()), nil
}

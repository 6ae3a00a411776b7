package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/types"
	"github.com/citydir/orgdirectory-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "orgdirectory", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Building{},
		&types.Organization{},
		&types.PhoneNumber{},
		&types.Activity{},
		&types.OrganizationActivity{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{
			name: "fk_organizations_building_id",
			stmt: `ALTER TABLE "organizations"
				ADD CONSTRAINT "fk_organizations_building_id"
				FOREIGN KEY ("building_id") REFERENCES "buildings"("id")`,
		},
		{
			name: "fk_phone_numbers_organization_id",
			stmt: `ALTER TABLE "phone_numbers"
				ADD CONSTRAINT "fk_phone_numbers_organization_id"
				FOREIGN KEY ("organization_id") REFERENCES "organizations"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_organization_activities_organization_id",
			stmt: `ALTER TABLE "organization_activities"
				ADD CONSTRAINT "fk_organization_activities_organization_id"
				FOREIGN KEY ("organization_id") REFERENCES "organizations"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_organization_activities_activity_id",
			stmt: `ALTER TABLE "organization_activities"
				ADD CONSTRAINT "fk_organization_activities_activity_id"
				FOREIGN KEY ("activity_id") REFERENCES "activities"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_activities_parent_id",
			stmt: `ALTER TABLE "activities"
				ADD CONSTRAINT "fk_activities_parent_id"
				FOREIGN KEY ("parent_id") REFERENCES "activities"("id")`,
		},
	}
	for _, c := range constraints {
		if err := s.db.Exec(c.stmt).Error; err != nil {
			// Re-running migrations against an already constrained schema is
			// not an error.
			s.log.Debug("Skipping constraint", "constraint", c.name, "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

package seed

import (
	"context"
	"fmt"

	"contech_bot/internal/model"
	"contech_bot/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DemoContractorPhone = "whatsapp:+5511999990000"
	demoContractorName  = "Construtora Exemplo LTDA"

	// São José dos Campos city centre
	sjcLat = -23.2237
	sjcLon = -45.9009
)

type demoJob struct {
	title       string
	description string
	offer       int64
	dLat, dLon  float64
}

var demoJobs = []demoJob{
	{"Pedreiro para Reboco", "Serviço de reboco em parede interna de prédio residencial.", 250, 0.005, 0.005},
	{"Eletricista Predial", "Instalação de fiação elétrica em edifício comercial.", 300, -0.004, 0.003},
	{"Pintura Fachada", "Pintura de fachada de prédio de 5 andares.", 400, 0.002, -0.004},
}

// Result reports what a seeding run inserted
type Result struct {
	ContractorCreated bool
	JobsCreated       int
}

// Run inserts the demo contractor and its open postings. Data that already
// exists is left untouched, so running it twice is harmless.
func Run(ctx context.Context, users repository.UserRepository, jobs repository.JobRepository, logger *zap.Logger) (Result, error) {
	var res Result

	contractor, err := users.FindByPhone(ctx, DemoContractorPhone)
	if err != nil {
		return res, fmt.Errorf("failed to look up demo contractor: %w", err)
	}
	if contractor == nil {
		contractor = &model.User{
			Phone:       DemoContractorPhone,
			Role:        model.RoleContractor,
			DisplayName: demoContractorName,
			Location:    &model.Location{Latitude: sjcLat, Longitude: sjcLon},
			Stage:       model.StageMainMenu,
		}
		if err := users.Create(ctx, contractor); err != nil {
			return res, fmt.Errorf("failed to create demo contractor: %w", err)
		}
		res.ContractorCreated = true
	}

	owned, err := jobs.ListByOwner(ctx, contractor.ID)
	if err != nil {
		return res, fmt.Errorf("failed to list demo postings: %w", err)
	}
	if len(owned) > 0 {
		logger.Info("demo data already present", zap.Int("contractor_id", contractor.ID), zap.Int("postings", len(owned)))
		return res, nil
	}

	for _, d := range demoJobs {
		lat, lon := sjcLat+d.dLat, sjcLon+d.dLon
		job := &model.JobPosting{
			Title:        d.title,
			Description:  d.description,
			PaymentOffer: decimal.NewFromInt(d.offer),
			Latitude:     &lat,
			Longitude:    &lon,
			Status:       model.JobStatusOpen,
			OwnerID:      contractor.ID,
		}
		if err := jobs.Create(ctx, job); err != nil {
			return res, fmt.Errorf("failed to create demo posting %q: %w", d.title, err)
		}
		res.JobsCreated++
	}

	logger.Info("demo data seeded",
		zap.Int("contractor_id", contractor.ID),
		zap.Bool("contractor_created", res.ContractorCreated),
		zap.Int("postings_created", res.JobsCreated),
	)
	return res, nil
}

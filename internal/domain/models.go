package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID when the caller did not provide one
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// User is a team member that creates or is assigned deals
type User struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(255);uniqueIndex"`
}

// Company is the organization a deal or client belongs to
type Company struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Website string `gorm:"type:varchar(500)"`
}

// Client is a contact person at a company
type Client struct {
	BaseModel
	Name      string     `gorm:"type:varchar(200);not null;index"`
	Email     string     `gorm:"type:varchar(255)"`
	Phone     string     `gorm:"type:varchar(50)"`
	Status    string     `gorm:"type:varchar(50);not null;default:'active'"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index;column:company_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID"`
}

// Product is a sellable service with a recurring monthly price
type Product struct {
	BaseModel
	Name         string              `gorm:"type:varchar(200);not null"`
	Category     string              `gorm:"type:varchar(100)"`
	MonthlyPrice decimal.NullDecimal `gorm:"type:decimal(15,2);column:monthly_price"`
}

// DealStage represents the stage of a deal in the sales pipeline
type DealStage string

const (
	DealStageProspect  DealStage = "prospect"
	DealStageQualified DealStage = "qualified"
	DealStageProposal  DealStage = "proposal"
	DealStageClosed    DealStage = "closed"
)

// DealStages lists the pipeline stages in declaration order
var DealStages = []DealStage{
	DealStageProspect,
	DealStageQualified,
	DealStageProposal,
	DealStageClosed,
}

// IsValid checks if the DealStage is a valid enum value
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageProspect, DealStageQualified, DealStageProposal, DealStageClosed:
		return true
	}
	return false
}

// Deal represents a sales opportunity in the pipeline
type Deal struct {
	BaseModel
	Name              string              `gorm:"type:varchar(200);not null"`
	Description       string              `gorm:"type:text"`
	Amount            decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	Probability       decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	Stage             DealStage           `gorm:"type:varchar(50);not null;default:'prospect';index"`
	ExpectedCloseDate *time.Time          `gorm:"type:date;column:expected_close_date;index"`
	CompanyID         *uuid.UUID          `gorm:"type:uuid;index;column:company_id"`
	Company           *Company            `gorm:"foreignKey:CompanyID"`
	AssignedTo        *uuid.UUID          `gorm:"type:uuid;index;column:assigned_to"`
	Assignee          *User               `gorm:"foreignKey:AssignedTo"`
	CreatedBy         *uuid.UUID          `gorm:"type:uuid;column:created_by"`
	Creator           *User               `gorm:"foreignKey:CreatedBy"`
	Products          []DealProduct       `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
}

// EffectiveDate is the expected close date, or the creation date when none is set
func (d *Deal) EffectiveDate() time.Time {
	if d.ExpectedCloseDate != nil {
		return *d.ExpectedCloseDate
	}
	return d.CreatedAt
}

// DealProduct is a product line item on a deal
type DealProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealID    uuid.UUID `gorm:"type:uuid;not null;index;column:deal_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;column:product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Quantity  int       `gorm:"not null;default:1"`
}

// BeforeCreate assigns an ID when the caller did not provide one
func (dp *DealProduct) BeforeCreate(tx *gorm.DB) error {
	if dp.ID == uuid.Nil {
		dp.ID = uuid.New()
	}
	return nil
}

// TableName overrides the default table name to match the migration
func (DealProduct) TableName() string {
	return "deal_products"
}

// ScenarioType classifies a forecast scenario
type ScenarioType string

const (
	ScenarioOptimistic  ScenarioType = "optimistic"
	ScenarioRealistic   ScenarioType = "realistic"
	ScenarioPessimistic ScenarioType = "pessimistic"
)

// IsValid checks if the ScenarioType is a valid enum value
func (t ScenarioType) IsValid() bool {
	switch t {
	case ScenarioOptimistic, ScenarioRealistic, ScenarioPessimistic:
		return true
	}
	return false
}

// ForecastSnapshot is a saved forecast for a date range.
// The (start_date, end_date) pair is unique; saving again replaces the row.
type ForecastSnapshot struct {
	BaseModel
	Title                string             `gorm:"type:varchar(255);not null"`
	StartDate            time.Time          `gorm:"type:date;not null;uniqueIndex:idx_sales_forecasts_range;column:start_date"`
	EndDate              time.Time          `gorm:"type:date;not null;uniqueIndex:idx_sales_forecasts_range;column:end_date"`
	TargetAmount         decimal.Decimal    `gorm:"type:decimal(15,2);not null;column:target_amount"`
	PredictedAmount      decimal.Decimal    `gorm:"type:decimal(15,2);not null;column:predicted_amount"`
	ConfidencePercentage decimal.Decimal    `gorm:"type:decimal(5,2);not null;column:confidence_percentage"`
	MonthlyBreakdown     datatypes.JSON     `gorm:"column:monthly_breakdown"`
	ProductBreakdown     datatypes.JSON     `gorm:"column:product_breakdown"`
	TeamBreakdown        datatypes.JSON     `gorm:"column:team_breakdown"`
	Notes                string             `gorm:"type:text"`
	Scenarios            []ForecastScenario `gorm:"foreignKey:ForecastID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name to match the migration
func (ForecastSnapshot) TableName() string {
	return "sales_forecasts"
}

// ForecastScenario is a what-if variant of a saved forecast
type ForecastScenario struct {
	BaseModel
	ForecastID       uuid.UUID       `gorm:"type:uuid;not null;index;column:forecast_id"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Type             ScenarioType    `gorm:"type:varchar(20);not null"`
	AdjustmentFactor decimal.Decimal `gorm:"type:decimal(4,2);not null;column:adjustment_factor"`
	PredictedAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;column:predicted_amount"`
	Assumptions      string          `gorm:"type:text"`
}

// TableName overrides the default table name to match the migration
func (ForecastScenario) TableName() string {
	return "forecast_scenarios"
}

// WebsiteContact is a message submitted through the public portfolio contact form
type WebsiteContact struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(255);not null"`
	Subject string `gorm:"type:varchar(255)"`
	Message string `gorm:"type:text"`
}

// ClientCommunication logs a call, email or meeting with a client
type ClientCommunication struct {
	BaseModel
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id"`
	Client   *Client   `gorm:"foreignKey:ClientID"`
	Type     string    `gorm:"type:varchar(50);not null"`
	Subject  string    `gorm:"type:varchar(255);not null"`
	Content  string    `gorm:"type:text"`
}

// Project represents delivery work for a client
type Project struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null;index"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(50);not null;default:'planning'"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index;column:client_id"`
	Client      *Client    `gorm:"foreignKey:ClientID"`
}

// Task is a unit of work inside a project
type Task struct {
	BaseModel
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(50);not null;default:'todo'"`
	DueDate     *time.Time `gorm:"type:date;column:due_date"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index;column:project_id"`
	Project     *Project   `gorm:"foreignKey:ProjectID"`
}

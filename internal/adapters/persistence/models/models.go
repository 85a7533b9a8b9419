package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role labels known to the system
const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// Roles is a non-empty set of role labels, stored as a JSON column
type Roles []string

// Value implements driver.Valuer
func (r Roles) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *Roles) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = nil
		return nil
	default:
		return errors.New("unsupported type for roles column")
	}
}

// Contains reports whether the set holds the given role
func (r Roles) Contains(role string) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

// IntersectsAny reports whether the set shares at least one role with allowed
func (r Roles) IntersectsAny(allowed ...string) bool {
	for _, want := range allowed {
		if r.Contains(want) {
			return true
		}
	}
	return false
}

// Valid reports whether the set is usable: non-empty with no blank labels
func (r Roles) Valid() bool {
	if len(r) == 0 {
		return false
	}
	for _, role := range r {
		if role == "" {
			return false
		}
	}
	return true
}

// User represents the users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Roles     Roles          `gorm:"type:json;not null" json:"roles"`
	// No default tag: GORM would skip a zero-valued field on insert and
	// the database default would silently activate the account.
	Active    bool           `gorm:"not null" json:"active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO: a user without the password hash
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Roles     Roles     `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     u.Roles,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// Note represents the notes table. UserID carries a RESTRICT constraint so
// the database itself refuses to orphan notes, backing up the service-level
// integrity gate.
type Note struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Completed bool           `gorm:"default:false" json:"completed"`
	Ticket    uint64         `gorm:"uniqueIndex;not null" json:"ticket"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	User      User           `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Note) TableName() string {
	return "notes"
}

// NoteResponse DTO: a note enriched with its owner's username
type NoteResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    uint64    `json:"ticket"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) ToResponse() *NoteResponse {
	return &NoteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Username:  n.User.Username,
		Title:     n.Title,
		Text:      n.Text,
		Completed: n.Completed,
		Ticket:    n.Ticket,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// TicketCounter holds the monotonic ticket sequence for notes. A single row
// is incremented inside the note-creation transaction so numbers are never
// reused, even after notes are deleted or purged.
type TicketCounter struct {
	ID  uint   `gorm:"primaryKey"`
	Seq uint64 `gorm:"not null;default:0"`
}

func (TicketCounter) TableName() string {
	return "ticket_counters"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Note{},
		&TicketCounter{},
	); err != nil {
		return err
	}

	// Ensure the single counter row exists
	return db.FirstOrCreate(&TicketCounter{ID: 1}, TicketCounter{ID: 1}).Error
}

package database

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a contest participant in the database.
// The employee id acts as the identity key and is stored upper-cased so
// lookups are case-insensitive. The configured admin identity is
// auto-provisioned on first login.
type User struct {
	gorm.Model
	EmployeeID     string `gorm:"uniqueIndex;not null"`
	Name           string
	PostingDetails string
	IsAdmin        bool `gorm:"default:false"`
}

// NormalizeEmployeeID canonicalizes an employee id for storage and lookup.
func NormalizeEmployeeID(employeeID string) string {
	return strings.ToUpper(strings.TrimSpace(employeeID))
}

// UpsertUser creates the user on first login and refreshes the profile
// fields on subsequent logins.
func (c *Client) UpsertUser(ctx context.Context, employeeID, name, postingDetails string, isAdmin bool) (*User, error) {
	employeeID = NormalizeEmployeeID(employeeID)

	var user User
	err := c.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = User{
			EmployeeID:     employeeID,
			Name:           name,
			PostingDetails: postingDetails,
			IsAdmin:        isAdmin,
		}
		if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
			log.Error("failed to create user", "error", err)
			return nil, err
		}
		return &user, nil
	} else if err != nil {
		log.Error("failed to get user", "error", err)
		return nil, err
	}

	user.Name = name
	user.PostingDetails = postingDetails
	user.IsAdmin = isAdmin
	if err := c.db.WithContext(ctx).Save(&user).Error; err != nil {
		log.Error("failed to update user", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByEmployeeID(ctx context.Context, employeeID string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("employee_id = ?", NormalizeEmployeeID(employeeID)).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by employee id", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Error("failed to get all users", "error", err)
		return nil, err
	}
	return users, nil
}

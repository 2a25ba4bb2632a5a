package repository

import (
	"database/sql"
	"errors"

	"taskboard/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
	UpdateProfilePicture(username, pictureURL string) (*models.User, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (username, email, password) VALUES ($1, $2, $3)
	          RETURNING user_id, created_date, updated_date`
	return r.db.QueryRowx(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedDate, &user.UpdatedDate)
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT user_id, username, email, password, profile_picture, created_date, updated_date
	          FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT user_id, username, email, password, profile_picture, created_date, updated_date
	          FROM users WHERE user_id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT user_id, username, email, password, profile_picture, created_date, updated_date
	          FROM users WHERE username = $1`
	err := r.db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	err := r.db.Get(&exists, query, username)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) UpdateProfilePicture(username, pictureURL string) (*models.User, error) {
	var user models.User
	query := `UPDATE users SET profile_picture = $1, updated_date = CURRENT_TIMESTAMP
	          WHERE username = $2
	          RETURNING user_id, username, email, password, profile_picture, created_date, updated_date`
	err := r.db.QueryRowx(query, pictureURL, username).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

package database

import (
	"database/sql"
	"testing"
	"time"

	"astrocoffee/app/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := testDB(t)
	if _, err := db.Exec("TRUNCATE users, sessions CASCADE"); err != nil {
		t.Fatalf("truncate users: %v", err)
	}

	user := &models.User{
		Email:    "coffee@astro.edu",
		Name:     "Coffee Organizer",
		Password: "hunter22",
	}
	if err := CreateUser(db, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := GetUserByEmail(db, "coffee@astro.edu")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := testDB(t)
	if _, err := db.Exec("TRUNCATE users, sessions CASCADE"); err != nil {
		t.Fatalf("truncate users: %v", err)
	}

	user := &models.User{Email: "s@astro.edu", Name: "S", Password: "pw123456"}
	if err := CreateUser(db, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token := uuid.NewString()
	if err := CreateSession(db, token, user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	session, err := GetSessionByID(db, token)
	if err != nil {
		t.Fatalf("GetSessionByID: %v", err)
	}
	if session.UserID != user.ID {
		t.Errorf("session user = %q, want %q", session.UserID, user.ID)
	}

	if err := DeleteSession(db, token); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := GetSessionByID(db, token); err != sql.ErrNoRows {
		t.Errorf("deleted session still resolves, err = %v", err)
	}
}

func TestExpiredSessionIsAbsent(t *testing.T) {
	db := testDB(t)
	if _, err := db.Exec("TRUNCATE users, sessions CASCADE"); err != nil {
		t.Fatalf("truncate users: %v", err)
	}

	user := &models.User{Email: "e@astro.edu", Name: "E", Password: "pw123456"}
	if err := CreateUser(db, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token := uuid.NewString()
	if err := CreateSession(db, token, user.ID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := GetSessionByID(db, token); err != sql.ErrNoRows {
		t.Errorf("expired session resolves, err = %v", err)
	}

	if err := DeleteExpiredSessions(db); err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
}

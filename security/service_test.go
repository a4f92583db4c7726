package security

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"go.uber.org/goleak"
	upstreamgorm "gorm.io/gorm"

	"github.com/moneta-labs/security-api/checks"
	"github.com/moneta-labs/security-api/clients"
	"github.com/moneta-labs/security-api/configs"
	"github.com/moneta-labs/security-api/datastore/gorm"
	apierrors "github.com/moneta-labs/security-api/errors"
	"github.com/moneta-labs/security-api/mail"
	"github.com/moneta-labs/security-api/tokens"
	"github.com/moneta-labs/security-api/users"
	"github.com/moneta-labs/security-api/wallets"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

type sentEmail struct {
	to    string
	email mail.Email
}

type recordingSender struct {
	sent []sentEmail
}

func (r *recordingSender) Send(to string, e mail.Email) error {
	r.sent = append(r.sent, sentEmail{to, e})
	return nil
}

type testHarness struct {
	svc    *Service
	sender *recordingSender
	db     *upstreamgorm.DB
}

func setup(t *testing.T) *testHarness {
	cfg := &configs.Config{
		DatabaseDSN:  filepath.Join(t.TempDir(), "test.db"),
		DatabaseType: "sqlite",
		MailBaseURL:  "http://localhost:3000",
	}

	db, err := gorm.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { gorm.Close(db) })

	sender := &recordingSender{}

	svc := NewService(
		cfg,
		users.NewGormStore(db),
		wallets.NewGormStore(db),
		checks.NewGormStore(db),
		tokens.NewGormStore(db),
		clients.NewGormStore(db),
		sender,
	)

	return &testHarness{svc, sender, db}
}

func (h *testHarness) signup(t *testing.T, name, email string) *users.User {
	t.Helper()
	u, err := h.svc.Signup(SignupRequest{
		Name:             name,
		Email:            email,
		Password:         "pw",
		InvestingAddress: "0xA1",
		PersonalAddress:  "0xP1",
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func (h *testHarness) checkCode(t *testing.T, userID uuid.UUID, checkType checks.Type) string {
	t.Helper()
	var c checks.Check
	if err := h.db.First(&c, "user_id = ? AND type = ?", userID, checkType).Error; err != nil {
		t.Fatalf("expected a %s check for user %s: %s", checkType, userID, err)
	}
	return c.Code
}

func (h *testHarness) createClient(t *testing.T, email string, confirmed, admin bool) (*clients.Client, *users.User) {
	t.Helper()

	owner, err := users.New("Owner", email, "pw")
	if err != nil {
		t.Fatal(err)
	}
	owner.IsConfirmed = confirmed
	owner.IsAdmin = admin
	if err := h.db.Create(owner).Error; err != nil {
		t.Fatal(err)
	}

	c := clients.New(owner.ID)
	if err := h.db.Omit("User").Create(c).Error; err != nil {
		t.Fatal(err)
	}

	return c, owner
}

func TestSignup(t *testing.T) {
	h := setup(t)

	u := h.signup(t, "Alice", "a@x.com")

	if u.Email != "a@x.com" {
		t.Errorf(`expected email "a@x.com", got "%s"`, u.Email)
	}

	if u.IsConfirmed {
		t.Error("expected a new user to be unconfirmed")
	}

	var ww []wallets.Wallet
	if err := h.db.Order("type asc").Find(&ww, "owner_id = ?", u.ID).Error; err != nil {
		t.Fatal(err)
	}

	want := []wallets.Wallet{
		{OwnerID: u.ID, Address: "0xA1", Type: wallets.Investing},
		{OwnerID: u.ID, Address: "0xP1", Type: wallets.Personal},
	}

	ignore := cmpopts.IgnoreFields(wallets.Wallet{}, "ID", "ObjectID", "CreatedAt", "UpdatedAt")
	if diff := cmp.Diff(want, ww, ignore); diff != "" {
		t.Errorf("wallet mismatch (-want +got):\n%s", diff)
	}

	if u.InvestingWalletID == nil || *u.InvestingWalletID != ww[0].ID {
		t.Error("expected user to reference the investing wallet")
	}

	if u.PersonalWalletID == nil || *u.PersonalWalletID != ww[1].ID {
		t.Error("expected user to reference the personal wallet")
	}

	for _, w := range ww {
		if w.ObjectID != w.ID.String() {
			t.Errorf("expected ObjectID to mirror ID for wallet %s", w.Address)
		}
	}

	if len(h.sender.sent) != 1 {
		t.Fatalf("expected exactly one email, got %d", len(h.sender.sent))
	}

	if h.sender.sent[0].to != "a@x.com" {
		t.Errorf(`expected email to go to "a@x.com", got "%s"`, h.sender.sent[0].to)
	}

	code := h.checkCode(t, u.ID, checks.Confirm)
	if !strings.Contains(h.sender.sent[0].email.HTML, code) {
		t.Error("expected confirmation email to contain the check code")
	}
}

func TestLogin(t *testing.T) {
	h := setup(t)
	u := h.signup(t, "Alice", "a@x.com")

	t.Run("unknown email", func(t *testing.T) {
		if _, err := h.svc.Login("nobody@x.com", "pw"); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	t.Run("unconfirmed user", func(t *testing.T) {
		if _, err := h.svc.Login("a@x.com", "pw"); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	code := h.checkCode(t, u.ID, checks.Confirm)
	if _, err := h.svc.Confirm(code); err != nil {
		t.Fatal(err)
	}

	t.Run("wrong password", func(t *testing.T) {
		if _, err := h.svc.Login("a@x.com", "not-pw"); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		token, err := h.svc.Login("a@x.com", "pw")
		if err != nil {
			t.Fatal(err)
		}

		if token.User == nil || token.User.ID != u.ID {
			t.Fatal("expected token to have its user populated")
		}

		if token.User.InvestingWallet == nil || token.User.InvestingWallet.Address != "0xA1" {
			t.Error("expected token user to have the investing wallet populated")
		}
	})
}

func TestConfirm(t *testing.T) {
	h := setup(t)
	u := h.signup(t, "Alice", "a@x.com")
	code := h.checkCode(t, u.ID, checks.Confirm)

	token, err := h.svc.Confirm(code)
	if err != nil {
		t.Fatal(err)
	}

	if token.User == nil || !token.User.IsConfirmed {
		t.Error("expected the user to be confirmed")
	}

	// The check is single use
	if _, err := h.svc.Confirm(code); !apierrors.IsRecordNotFound(err) {
		t.Errorf("expected a not found error on the second use, got %v", err)
	}
}

func TestToken(t *testing.T) {
	h := setup(t)
	u := h.signup(t, "Alice", "a@x.com")
	code := h.checkCode(t, u.ID, checks.Confirm)

	issued, err := h.svc.Confirm(code)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("missing prefix", func(t *testing.T) {
		if _, err := h.svc.Token(issued.Code); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	t.Run("valid bearer", func(t *testing.T) {
		token, err := h.svc.Token("Bearer " + issued.Code)
		if err != nil {
			t.Fatal(err)
		}

		if token == nil || token.User == nil || token.User.ID != u.ID {
			t.Fatal("expected token with its user populated")
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		token, err := h.svc.Token("Bearer unknown-code")
		if err != nil {
			t.Fatal(err)
		}
		if token != nil {
			t.Error("expected an empty result for an unknown code")
		}
	})
}

func TestLogout(t *testing.T) {
	h := setup(t)
	u := h.signup(t, "Alice", "a@x.com")
	code := h.checkCode(t, u.ID, checks.Confirm)

	issued, err := h.svc.Confirm(code)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("missing prefix", func(t *testing.T) {
		if _, err := h.svc.Logout(issued.Code); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	t.Run("deletes the token", func(t *testing.T) {
		token, err := h.svc.Logout("Bearer " + issued.Code)
		if err != nil {
			t.Fatal(err)
		}

		if token.Code != issued.Code {
			t.Error("expected the deleted token's last known state")
		}

		lookup, err := h.svc.Token("Bearer " + issued.Code)
		if err != nil {
			t.Fatal(err)
		}
		if lookup != nil {
			t.Error("expected token lookup to be empty after logout")
		}
	})

	t.Run("already deleted", func(t *testing.T) {
		if _, err := h.svc.Logout("Bearer " + issued.Code); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})
}

func TestClient(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		h := setup(t)
		c, _ := h.createClient(t, "owner@x.com", true, false)

		if _, err := h.svc.Client(c.ID, "wrong-secret", nil); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	t.Run("unconfirmed owner", func(t *testing.T) {
		h := setup(t)
		c, _ := h.createClient(t, "owner@x.com", false, false)

		if _, err := h.svc.Client(c.ID, c.Secret, nil); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})

	t.Run("self issue", func(t *testing.T) {
		h := setup(t)
		c, owner := h.createClient(t, "owner@x.com", true, false)

		token, err := h.svc.Client(c.ID, c.Secret, nil)
		if err != nil {
			t.Fatal(err)
		}

		if token.UserID != owner.ID {
			t.Error("expected token to be minted for the owner")
		}
	})

	t.Run("non-admin ignores target", func(t *testing.T) {
		h := setup(t)
		c, owner := h.createClient(t, "owner@x.com", true, false)
		target := h.signup(t, "Bob", "b@x.com")

		token, err := h.svc.Client(c.ID, c.Secret, &target.ID)
		if err != nil {
			t.Fatal(err)
		}

		if token.UserID != owner.ID {
			t.Error("expected a non-admin owner to receive a token for itself")
		}
	})

	t.Run("admin impersonates target", func(t *testing.T) {
		h := setup(t)
		c, _ := h.createClient(t, "admin@x.com", true, true)
		target := h.signup(t, "Bob", "b@x.com")

		token, err := h.svc.Client(c.ID, c.Secret, &target.ID)
		if err != nil {
			t.Fatal(err)
		}

		if token.UserID != target.ID {
			t.Error("expected the token to be minted for the target user")
		}
	})

	t.Run("admin with unknown target", func(t *testing.T) {
		h := setup(t)
		c, _ := h.createClient(t, "admin@x.com", true, true)
		unknown := uuid.New()

		if _, err := h.svc.Client(c.ID, c.Secret, &unknown); !apierrors.IsInvalidCredentials(err) {
			t.Errorf("expected a credential error, got %v", err)
		}
	})
}

func TestForgot(t *testing.T) {
	h := setup(t)

	t.Run("unknown email", func(t *testing.T) {
		if _, err := h.svc.Forgot("nobody@x.com"); !apierrors.IsRecordNotFound(err) {
			t.Errorf("expected a not found error, got %v", err)
		}

		if len(h.sender.sent) != 0 {
			t.Error("expected no email for an unknown address")
		}
	})

	t.Run("known email", func(t *testing.T) {
		u := h.signup(t, "Alice", "a@x.com")

		if _, err := h.svc.Forgot("a@x.com"); err != nil {
			t.Fatal(err)
		}

		// signup + forgot
		if len(h.sender.sent) != 2 {
			t.Fatalf("expected two emails, got %d", len(h.sender.sent))
		}

		code := h.checkCode(t, u.ID, checks.Confirm)
		if !strings.Contains(h.sender.sent[1].email.HTML, code) {
			t.Error("expected recovery email to contain the check code")
		}
	})
}

// TestRecoveryChain walks the whole forgot -> recover -> passwd flow.
func TestRecoveryChain(t *testing.T) {
	h := setup(t)
	u := h.signup(t, "Alice", "a@x.com")

	if _, err := h.svc.Forgot("a@x.com"); err != nil {
		t.Fatal(err)
	}

	code := h.checkCode(t, u.ID, checks.Confirm)

	recovery, token, err := h.svc.Recover(code)
	if err != nil {
		t.Fatal(err)
	}

	if recovery.Type != checks.Recover {
		t.Errorf("expected a recover check, got %s", recovery.Type)
	}

	if token.User == nil || !token.User.IsConfirmed {
		t.Error("expected the user to be confirmed after recover")
	}

	if _, err := h.svc.Passwd(recovery.Code, "new-pw"); err != nil {
		t.Fatal(err)
	}

	if _, err := h.svc.Login("a@x.com", "pw"); !apierrors.IsInvalidCredentials(err) {
		t.Errorf("expected the old password to be rejected, got %v", err)
	}

	if _, err := h.svc.Login("a@x.com", "new-pw"); err != nil {
		t.Errorf("expected the new password to work, got %v", err)
	}

	// The recovery check is single use
	if _, err := h.svc.Passwd(recovery.Code, "other-pw"); !apierrors.IsRecordNotFound(err) {
		t.Errorf("expected a not found error on reuse, got %v", err)
	}
}

// A check whose user row is gone answers with a not found error instead of
// panicking; the schema has no foreign key constraint to prevent the orphan.
func TestOrphanedCheck(t *testing.T) {
	h := setup(t)

	t.Run("passwd", func(t *testing.T) {
		c := checks.New(uuid.New(), checks.Recover)
		if err := h.db.Create(c).Error; err != nil {
			t.Fatal(err)
		}

		if _, err := h.svc.Passwd(c.Code, "new-pw"); !apierrors.IsRecordNotFound(err) {
			t.Errorf("expected a not found error, got %v", err)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		c := checks.New(uuid.New(), checks.Confirm)
		if err := h.db.Create(c).Error; err != nil {
			t.Fatal(err)
		}

		if _, err := h.svc.Confirm(c.Code); !apierrors.IsRecordNotFound(err) {
			t.Errorf("expected a not found error, got %v", err)
		}
	})
}

// A repeated forgot invalidates the previous check of the same type.
func TestCheckInvalidation(t *testing.T) {
	h := setup(t)
	u := h.signup(t, "Alice", "a@x.com")

	if _, err := h.svc.Forgot("a@x.com"); err != nil {
		t.Fatal(err)
	}
	first := h.checkCode(t, u.ID, checks.Confirm)

	if _, err := h.svc.Forgot("a@x.com"); err != nil {
		t.Fatal(err)
	}
	second := h.checkCode(t, u.ID, checks.Confirm)

	if first == second {
		t.Fatal("expected a fresh check code")
	}

	if _, _, err := h.svc.Recover(first); !apierrors.IsRecordNotFound(err) {
		t.Errorf("expected the stale check to be invalid, got %v", err)
	}

	if _, _, err := h.svc.Recover(second); err != nil {
		t.Errorf("expected the fresh check to be valid, got %v", err)
	}
}

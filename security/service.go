// Package security implements the account flows: signup, confirmation,
// password recovery, login, client token exchange and logout.
package security

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/moneta-labs/security-api/checks"
	"github.com/moneta-labs/security-api/clients"
	"github.com/moneta-labs/security-api/configs"
	apierrors "github.com/moneta-labs/security-api/errors"
	"github.com/moneta-labs/security-api/mail"
	"github.com/moneta-labs/security-api/tokens"
	"github.com/moneta-labs/security-api/users"
	"github.com/moneta-labs/security-api/wallets"
)

const bearerScheme = "Bearer "

// Service defines the API for account and credential management.
type Service struct {
	users   users.Store
	wallets wallets.Store
	checks  checks.Store
	tokens  tokens.Store
	clients clients.Store
	sender  mail.Sender
	cfg     *configs.Config
}

// NewService initiates a new security service.
func NewService(
	cfg *configs.Config,
	us users.Store,
	ws wallets.Store,
	cs checks.Store,
	ts tokens.Store,
	cls clients.Store,
	sender mail.Sender,
) *Service {
	return &Service{us, ws, cs, ts, cls, sender, cfg}
}

// SignupRequest carries the input for Signup.
type SignupRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	InvestingAddress string `json:"investingAddress"`
	PersonalAddress  string `json:"personalAddress"`
}

// Signup creates an unconfirmed user with one investing and one personal
// wallet, stores a confirmation check and sends the confirmation email.
// The created records are not rolled back if the email can not be sent.
func (s *Service) Signup(r SignupRequest) (*users.User, error) {
	u, err := users.New(r.Name, r.Email, r.Password)
	if err != nil {
		return nil, err
	}

	if err := s.users.InsertUser(u); err != nil {
		return nil, err
	}

	investing := wallets.New(u.ID, r.InvestingAddress, wallets.Investing)
	if err := s.wallets.InsertWallet(investing); err != nil {
		return nil, err
	}

	personal := wallets.New(u.ID, r.PersonalAddress, wallets.Personal)
	if err := s.wallets.InsertWallet(personal); err != nil {
		return nil, err
	}

	u.InvestingWalletID = &investing.ID
	u.InvestingWallet = investing
	u.PersonalWalletID = &personal.ID
	u.PersonalWallet = personal

	if err := s.users.SaveUser(u); err != nil {
		return nil, err
	}

	log.
		WithFields(log.Fields{"userId": u.ID, "email": u.Email}).
		Debug("User signed up")

	if err := s.sendCheck(u, checks.Confirm, mail.ConfirmTemplate); err != nil {
		return nil, err
	}

	return u, nil
}

// Forgot starts a password recovery for the given email. It stores a
// confirmation check, consumed later by Recover, and sends the recovery
// email. Unknown emails fail with a not found error instead of creating an
// orphaned check.
func (s *Service) Forgot(email string) (*users.User, error) {
	u, err := s.users.UserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.RecordNotFound("user")
		}
		return nil, err
	}

	if err := s.sendCheck(&u, checks.Confirm, mail.RecoverTemplate); err != nil {
		return nil, err
	}

	return &u, nil
}

// Passwd consumes a recovery check and replaces the referenced user's
// password.
func (s *Service) Passwd(code, password string) (*users.User, error) {
	c, err := s.checks.Check(code, checks.Recover)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.RecordNotFound("check")
		}
		return nil, err
	}

	// The schema carries no foreign key constraint, so a check may outlive
	// its user.
	if c.User == nil {
		return nil, apierrors.RecordNotFound("user")
	}

	if err := c.User.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.users.SaveUser(c.User); err != nil {
		return nil, err
	}

	if err := s.checks.DeleteCheck(&c); err != nil {
		return nil, err
	}

	return c.User, nil
}

// Confirm consumes a confirmation check, marks the referenced user as
// confirmed and returns a fresh token for them.
func (s *Service) Confirm(code string) (*tokens.Token, error) {
	c, err := s.consumeConfirmCheck(code)
	if err != nil {
		return nil, err
	}

	return s.issueToken(c.UserID)
}

// Recover consumes a confirmation check, the one stored by Forgot, marks the
// user as confirmed and returns a fresh recovery check together with a token.
// The recovery check is what Passwd consumes to finish the flow.
func (s *Service) Recover(code string) (*checks.Check, *tokens.Token, error) {
	c, err := s.consumeConfirmCheck(code)
	if err != nil {
		return nil, nil, err
	}

	recovery := checks.New(c.UserID, checks.Recover)
	if err := s.checks.InsertCheck(recovery); err != nil {
		return nil, nil, err
	}

	t, err := s.issueToken(c.UserID)
	if err != nil {
		return nil, nil, err
	}

	return recovery, t, nil
}

// Login verifies the email and password and returns a fresh token with the
// user and their investing wallet populated. Unknown, unconfirmed and
// mismatching users all fail with the same credential error.
func (s *Service) Login(email, password string) (*tokens.Token, error) {
	u, err := s.users.UserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.InvalidCredentials()
		}
		return nil, err
	}

	if !u.IsConfirmed {
		return nil, apierrors.InvalidCredentials()
	}

	if !u.ComparePassword(password) {
		return nil, apierrors.InvalidCredentials()
	}

	return s.issueToken(u.ID)
}

// Client exchanges a client id and secret for a token. The token is minted
// for the client's owning user, unless a target user is given and the owner
// is an admin, in which case it is minted for the target. A non-admin owner
// passing a target still receives a token for itself.
func (s *Service) Client(clientID uuid.UUID, secret string, userID *uuid.UUID) (*tokens.Token, error) {
	c, err := s.clients.ClientBySecret(clientID, secret)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.InvalidCredentials()
		}
		return nil, err
	}

	if c.User == nil || !c.User.IsConfirmed {
		return nil, apierrors.InvalidCredentials()
	}

	target := c.UserID
	if userID != nil && c.User.IsAdmin {
		u, err := s.users.User(*userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierrors.InvalidCredentials()
			}
			return nil, err
		}
		target = u.ID
	}

	return s.issueToken(target)
}

// Token resolves a bearer header to a stored token. A missing "Bearer "
// prefix is a credential error; an unknown code returns no token and no
// error.
func (s *Service) Token(bearer string) (*tokens.Token, error) {
	code, err := bearerCode(bearer)
	if err != nil {
		return nil, err
	}

	t, err := s.tokens.TokenByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &t, nil
}

// Logout deletes the token referenced by the bearer header and returns its
// last known state.
func (s *Service) Logout(bearer string) (*tokens.Token, error) {
	code, err := bearerCode(bearer)
	if err != nil {
		return nil, err
	}

	t, err := s.tokens.TokenByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.InvalidCredentials()
		}
		return nil, err
	}

	if err := s.tokens.DeleteToken(&t); err != nil {
		return nil, err
	}

	return &t, nil
}

// consumeConfirmCheck looks up a confirmation check by code, marks the
// referenced user as confirmed and deletes the check.
func (s *Service) consumeConfirmCheck(code string) (*checks.Check, error) {
	c, err := s.checks.Check(code, checks.Confirm)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.RecordNotFound("check")
		}
		return nil, err
	}

	if c.User == nil {
		return nil, apierrors.RecordNotFound("user")
	}

	c.User.IsConfirmed = true
	if err := s.users.SaveUser(c.User); err != nil {
		return nil, err
	}

	if err := s.checks.DeleteCheck(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// issueToken mints a token for the user and reloads it with the user and
// investing wallet populated.
func (s *Service) issueToken(userID uuid.UUID) (*tokens.Token, error) {
	t := tokens.New(userID)
	if err := s.tokens.InsertToken(t); err != nil {
		return nil, err
	}

	populated, err := s.tokens.Token(t.ID)
	if err != nil {
		return nil, err
	}

	return &populated, nil
}

// sendCheck stores a fresh check for the user and emails its code rendered
// through the given template.
func (s *Service) sendCheck(u *users.User, checkType checks.Type, render func(mail.TemplateData) (mail.Email, error)) error {
	c := checks.New(u.ID, checkType)
	if err := s.checks.InsertCheck(c); err != nil {
		return err
	}

	e, err := render(mail.TemplateData{
		BaseURL:  s.cfg.MailBaseURL,
		Username: u.Email,
		Check:    c.Code,
	})
	if err != nil {
		return err
	}

	return s.sender.Send(u.Email, e)
}

func bearerCode(bearer string) (string, error) {
	if !strings.HasPrefix(bearer, bearerScheme) {
		return "", apierrors.InvalidCredentials()
	}
	return strings.TrimPrefix(bearer, bearerScheme), nil
}

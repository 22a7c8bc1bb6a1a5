package account

import (
	"errors"
	"sync"

	"github.com/nrednav/cuid2"

	"uk.co.dudmesh.ledger/internal/model"
	"uk.co.dudmesh.ledger/internal/store"
	"uk.co.dudmesh.ledger/pkg/credentials"
	"uk.co.dudmesh.ledger/pkg/ledger"
)

const (
	MessageLoginSuccess          = "login success"
	MessageVerificationSuccess   = "verification success"
	MessagePasswordResetSuccess  = "password reset success"
	MessagePasswordChanged       = "Password changed successfully"
	MessageTokenAdded            = "Token added successfully"
	MessageTransactionSuccessful = "Transaction successful"
	MessageTransactionReceived   = "Transaction received and processed"

	MessagePasswordsDoNotMatch = "Passwords do not match"
	MessageInvalidCredentials  = "Invalid login or password"
	MessageLoginTaken          = "Login already taken"
	MessageUserNotFound        = "User not found"
	MessageTokenExists         = "Token already exists for user"
	MessageInsufficientBalance = "Insufficient balance"
	MessageInvalidAmount       = "Invalid amount"
	MessageInternalError       = "Internal error"
)

type Config interface {
	DefaultTokens() []string
}

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// service is the account directory. Every operation runs under mu, so callers
// observe the operations in some sequential order.
type service struct {
	mu         sync.Mutex
	store      store.Store
	logger     Logger
	seedTokens []string
}

func New(config Config, store store.Store, logger Logger) *service {
	return &service{
		store:      store,
		logger:     logger,
		seedTokens: config.DefaultTokens(),
	}
}

// Register creates an account and signs it in, returning the sign-in result.
// The account is stored online by a single insert.
func (s *service) Register(login, password, confirmPassword string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if password != confirmPassword {
		return model.BadRequest(MessagePasswordsDoNotMatch)
	}
	if !credentials.ValidLogin(login) || !credentials.ValidPassword(password) {
		return model.BadRequest(MessageInvalidCredentials)
	}

	user := model.NewUser(login, password, s.seedTokens)
	user.Online = true
	if err := s.store.Insert(user); err != nil {
		if errors.Is(err, model.ErrorLoginTaken) {
			return model.Conflict(MessageLoginTaken)
		}
		return s.internalError("inserting user", err)
	}
	s.logger.Infof("registered account %s (%s)", user.Login, user.ID)
	s.logger.Debugf("account %s signed in", user.Login)
	return model.OK(MessageLoginSuccess)
}

func (s *service) Authenticate(login, password string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, result, ok := s.checkCredentials(login, password)
	if !ok {
		return result
	}

	user.Online = true
	if err := s.store.Update(user); err != nil {
		return s.internalError("updating user", err)
	}
	s.logger.Debugf("account %s signed in", user.Login)
	return model.OK(MessageLoginSuccess)
}

// Verify records identity details. The values are stored as given.
func (s *service) Verify(login, password, phone string, age int, cardNumber, geo string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, result, ok := s.checkCredentials(login, password)
	if !ok {
		return result
	}

	user.Phone = &phone
	user.Age = &age
	user.CardNumber = &cardNumber
	user.Geo = &geo
	user.Verified = true
	if err := s.store.Update(user); err != nil {
		return s.internalError("updating user", err)
	}
	s.logger.Infof("account %s verified", user.Login)
	return model.OK(MessageVerificationSuccess)
}

// ResetPassword overwrites the password of the first account verified with phone.
func (s *service) ResetPassword(phone, newPassword string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.ByPhone(phone)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return model.NotFound(MessageUserNotFound)
		}
		return s.internalError("fetching user by phone", err)
	}

	user.Password = newPassword
	if err := s.store.Update(user); err != nil {
		return s.internalError("updating user", err)
	}
	s.logger.Infof("password reset for account %s", user.Login)
	return model.OK(MessagePasswordResetSuccess)
}

func (s *service) ChangePassword(login, oldPassword, newPassword string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, result, ok := s.checkCredentials(login, oldPassword)
	if !ok {
		return result
	}

	user.Password = newPassword
	if err := s.store.Update(user); err != nil {
		return s.internalError("updating user", err)
	}
	s.logger.Infof("password changed for account %s", user.Login)
	return model.OK(MessagePasswordChanged)
}

// AddToken opens a token balance. A token held at zero counts as absent and
// may be added again.
func (s *service) AddToken(uid model.UserID, token string, initialBalance float64) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, result, ok := s.resolve(uid)
	if !ok {
		return result
	}
	if user.Balance[token] != 0 {
		return model.Conflict(MessageTokenExists)
	}

	user.Balance[token] = initialBalance
	if err := s.store.Update(user); err != nil {
		return s.internalError("updating user", err)
	}
	s.logger.Infof("account %s opened %s with %s", user.Login, token, ledger.FormatAmount(initialBalance))
	return model.OK(MessageTokenAdded)
}

// Transfer moves amount of token from sender to receiver. Only the sender's
// balance is checked; a token the sender does not hold counts as zero.
func (s *service) Transfer(senderUID, receiverUID model.UserID, amount float64, token string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, receiver, result, ok := s.resolvePair(senderUID, receiverUID)
	if !ok {
		return result
	}
	if !validAmount(amount) {
		return model.BadRequest(MessageInvalidAmount)
	}
	if sender.Balance[token] < amount {
		return model.BadRequest(MessageInsufficientBalance)
	}

	sender.Balance[token] -= amount
	receiver.Balance[token] += amount
	if err := s.store.Update(distinct(sender, receiver)...); err != nil {
		return s.internalError("updating balances", err)
	}
	s.logger.Infof("transfer %s: %s sent %s %s to %s", cuid2.Generate(), sender.Login, ledger.FormatAmount(amount), token, receiver.Login)
	return model.OK(MessageTransactionSuccessful)
}

// TransferWithHistory moves amount of token from sender to receiver and records
// the transfer in both histories. Unlike Transfer it also requires the receiver
// to hold at least amount of token.
func (s *service) TransferWithHistory(receiverUID, senderUID model.UserID, amount float64, token string) model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, receiver, result, ok := s.resolvePair(senderUID, receiverUID)
	if !ok {
		return result
	}
	if !validAmount(amount) {
		return model.BadRequest(MessageInvalidAmount)
	}
	if sender.Balance[token] < amount || receiver.Balance[token] < amount {
		return model.BadRequest(MessageInsufficientBalance)
	}

	sender.Balance[token] -= amount
	receiver.Balance[token] += amount

	entry := ledger.TransferEntry(sender.Login, amount, token, receiver.Login)
	sender.TransactionHistory = append(sender.TransactionHistory, entry)
	receiver.TransactionHistory = append(receiver.TransactionHistory, entry)

	if err := s.store.Update(distinct(sender, receiver)...); err != nil {
		return s.internalError("updating balances", err)
	}
	s.logger.Infof("transfer %s: %s", cuid2.Generate(), entry)
	return model.OK(MessageTransactionReceived)
}

// Lookup returns a copy of the account registered under login.
func (s *service) Lookup(login string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.ByLogin(login)
}

// Fetch returns a copy of the account with the given uid.
func (s *service) Fetch(uid model.UserID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.ByID(uid)
}

func (s *service) checkCredentials(login, password string) (*model.User, model.Result, bool) {
	user, err := s.store.ByLogin(login)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil, model.Unauthorized(MessageInvalidCredentials), false
		}
		return nil, s.internalError("fetching user by login", err), false
	}
	if user.Password != password {
		return nil, model.Unauthorized(MessageInvalidCredentials), false
	}
	return user, model.Result{}, true
}

func (s *service) resolve(uid model.UserID) (*model.User, model.Result, bool) {
	if !uid.WellFormed() {
		return nil, model.NotFound(MessageUserNotFound), false
	}
	user, err := s.store.ByID(uid)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil, model.NotFound(MessageUserNotFound), false
		}
		return nil, s.internalError("fetching user by id", err), false
	}
	return user, model.Result{}, true
}

// resolvePair loads both parties of a transfer. A self-transfer yields the
// same record twice so that debit and credit apply to one balance.
func (s *service) resolvePair(senderUID, receiverUID model.UserID) (*model.User, *model.User, model.Result, bool) {
	sender, result, ok := s.resolve(senderUID)
	if !ok {
		return nil, nil, result, false
	}
	if receiverUID == senderUID {
		return sender, sender, model.Result{}, true
	}
	receiver, result, ok := s.resolve(receiverUID)
	if !ok {
		return nil, nil, result, false
	}
	return sender, receiver, model.Result{}, true
}

// validAmount rejects negative amounts and NaN, which compares false against
// every balance.
func validAmount(amount float64) bool {
	return amount >= 0
}

func distinct(sender, receiver *model.User) []*model.User {
	if sender == receiver {
		return []*model.User{sender}
	}
	return []*model.User{sender, receiver}
}

func (s *service) internalError(action string, err error) model.Result {
	s.logger.Errorf("%s: %v", action, err)
	return model.InternalError(MessageInternalError)
}

package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/spendly/backend/internal/domain/entity"
	"github.com/spendly/backend/internal/integration/persistence"
	"github.com/spendly/backend/test/integration/mock"
)

func (t *testContext) aUserExistsWithEmail(userID, email string) error {
	t.identityApi.AddUser(mock.IdentityUser{ID: userID, Email: email})
	return nil
}

func (t *testContext) aUserNamedExistsWithEmail(userID, name, email string) error {
	t.identityApi.AddUser(mock.IdentityUser{ID: userID, Email: email, FirstName: name})
	return nil
}

func (t *testContext) iAmAuthenticatedAs(userID string) error {
	token, err := signSessionToken(userID, time.Now().Add(time.Hour))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) mySessionTokenHasExpired(userID string) error {
	token, err := signSessionToken(userID, time.Now().Add(-time.Hour))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

// signSessionToken issues an HS256 session token the way the identity provider does.
func signSessionToken(subject string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"sid": "sess_" + subject,
		"iat": expiresAt.Add(-2 * time.Hour).Unix(),
		"exp": expiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testIdentitySecret))
}

func (t *testContext) theIdentityProviderAnswersFor(status int, userID string) error {
	t.identityApi.SetStatus(userID, status)
	return nil
}

func (t *testContext) aSystemCategoryExists(name string) error {
	category := entity.NewCategory(name, "tag", "#64748B", "")
	category.Owner = entity.SystemOwner()
	category.UpdatedByID = "system"

	if err := persistence.NewCategoryRepository(t.db.DbConn).Create(context.Background(), category); err != nil {
		return err
	}
	t.saved["category:"+name] = category.ID.String()
	return nil
}

func (t *testContext) theUserHasACategory(userID, name string) error {
	category := entity.NewCategory(name, "tag", "#0EA5E9", userID)

	if err := persistence.NewCategoryRepository(t.db.DbConn).Create(context.Background(), category); err != nil {
		return err
	}
	t.saved["category:"+name] = category.ID.String()
	return nil
}

func (t *testContext) theAIServiceIsUnavailable() error {
	t.suggestions.setAvailable(false)
	return nil
}

func (t *testContext) theEmailWorkerRuns() error {
	if t.injector.EmailWorker == nil {
		return errors.New("email worker is not configured")
	}
	// Jobs become due at their creation time; run slightly ahead of it.
	t.timeMock.SetCurrentTime(time.Now().UTC().Add(time.Second))
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) emailsShouldHaveBeenSentTo(quantity int, recipient string) error {
	count := 0
	for _, sent := range t.sender.SentEmails {
		if sent.To == recipient {
			count++
		}
	}
	if count != quantity {
		return fmt.Errorf("expected %d emails to %s, got %d", quantity, recipient, count)
	}
	return nil
}

func (t *testContext) theIdentityProviderShouldHaveReceivedRequestsFor(quantity int, userID string) error {
	count := t.identityApi.GetRequestCount("GET", "/users/"+userID)
	if count != quantity {
		return fmt.Errorf("expected %d identity requests for %s, got %d", quantity, userID, count)
	}
	return nil
}

func (t *testContext) modelSlice(table string) (any, error) {
	model, ok := t.db.GetModel(table)
	if !ok {
		return nil, fmt.Errorf("table '%s' not found in models", table)
	}
	entityType := reflect.TypeOf(model).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))
	return slicePtr.Interface(), nil
}

func sliceLen(slicePtr any) int {
	return reflect.ValueOf(slicePtr).Elem().Len()
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	rows, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	if err := t.db.DbConn.Unscoped().Find(rows).Error; err != nil {
		return err
	}

	if count := sliceLen(rows); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	rows, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		if value == nil {
			query = query.Where(fmt.Sprintf("%s IS NULL", key))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if count := sliceLen(rows); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studywise/studywise-backend/internal/apierr"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/requestdata"
	"github.com/studywise/studywise-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	return NewAuthService(gdb, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := &types.User{Email: "Student@Example.com", Password: "supersecret", FullName: "A Student"}
	require.NoError(t, svc.RegisterUser(ctx, user))
	require.Equal(t, "student@example.com", user.Email)
	require.NotEqual(t, "supersecret", user.Password)

	access, refresh, err := svc.LoginUser(ctx, "student@example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	authed, err := svc.SetContextFromToken(ctx, access)
	require.NoError(t, err)
	rd := requestdata.GetRequestData(authed)
	require.NotNil(t, rd)
	require.Equal(t, user.ID, rd.UserID)
	require.Equal(t, refresh, rd.RefreshToken)
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	err := svc.RegisterUser(ctx, &types.User{Email: "not-an-email", Password: "supersecret"})
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)

	err = svc.RegisterUser(ctx, &types.User{Email: "a@b.com", Password: "short"})
	apiErr, ok = apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &types.User{Email: "dup@example.com", Password: "supersecret"}))
	err := svc.RegisterUser(ctx, &types.User{Email: "DUP@example.com", Password: "supersecret"})
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &types.User{Email: "u@example.com", Password: "supersecret"}))
	_, _, err := svc.LoginUser(ctx, "u@example.com", "wrongpassword")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 401, apiErr.Status)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &types.User{Email: "r@example.com", Password: "supersecret"}))
	access, refresh, err := svc.LoginUser(ctx, "r@example.com", "supersecret")
	require.NoError(t, err)

	authed, err := svc.SetContextFromToken(ctx, access)
	require.NoError(t, err)
	newAccess, newRefresh, err := svc.RefreshUser(authed)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEqual(t, refresh, newRefresh)

	// The old refresh token is gone after rotation.
	_, _, err = svc.RefreshUser(authed)
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 401, apiErr.Status)
}

func TestGetMeAndUpdateProfile(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := &types.User{Email: "me@example.com", Password: "supersecret", FullName: "Old Name"}
	require.NoError(t, svc.RegisterUser(ctx, user))
	authed := ctxForUser(user.ID)

	me, err := svc.GetMe(authed)
	require.NoError(t, err)
	require.Equal(t, "me@example.com", me.Email)
	require.Equal(t, "Old Name", me.FullName)

	newName := "New Name"
	style := "visual"
	tz := "Europe/Berlin"
	updated, err := svc.UpdateProfile(authed, &UpdateProfileInput{
		FullName:      &newName,
		LearningStyle: &style,
		Timezone:      &tz,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.FullName)
	require.Equal(t, "visual", updated.LearningStyle)
	require.Equal(t, "Europe/Berlin", updated.Timezone)

	// Omitted fields are left alone.
	goals := "pass the bar exam"
	updated, err = svc.UpdateProfile(authed, &UpdateProfileInput{StudyGoals: &goals})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.FullName)
	require.Equal(t, "pass the bar exam", updated.StudyGoals)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := &types.User{Email: "cp@example.com", Password: "supersecret", FullName: "CP"}
	require.NoError(t, svc.RegisterUser(ctx, user))
	authed := ctxForUser(user.ID)

	// Wrong current password is rejected before anything changes.
	err := svc.ChangePassword(authed, "wrongpassword", "anothersecret")
	apiErr, ok := apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)

	// A too-short replacement is rejected.
	err = svc.ChangePassword(authed, "supersecret", "short")
	apiErr, ok = apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 400, apiErr.Status)

	require.NoError(t, svc.ChangePassword(authed, "supersecret", "anothersecret"))
	_, _, err = svc.LoginUser(ctx, "cp@example.com", "supersecret")
	apiErr, ok = apierr.From(err)
	require.True(t, ok)
	require.Equal(t, 401, apiErr.Status)
	_, _, err = svc.LoginUser(ctx, "cp@example.com", "anothersecret")
	require.NoError(t, err)
}

func TestLogout_RemovesToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &types.User{Email: "l@example.com", Password: "supersecret"}))
	access, _, err := svc.LoginUser(ctx, "l@example.com", "supersecret")
	require.NoError(t, err)

	authed, err := svc.SetContextFromToken(ctx, access)
	require.NoError(t, err)
	require.NoError(t, svc.LogoutUser(authed))

	authedAgain, err := svc.SetContextFromToken(ctx, access)
	require.NoError(t, err)
	rd := requestdata.GetRequestData(authedAgain)
	require.NotNil(t, rd)
	require.Empty(t, rd.RefreshToken)
}

package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestAppErrorWrapping(t *testing.T) {
	err := error(New(errBoom, http.StatusConflict, "conflict"))

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "conflict: boom", err.Error())

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)

	assert.Equal(t, "conflict", New(nil, http.StatusConflict, "conflict").Error())
	assert.Equal(t, http.StatusInternalServerError, Internal(errBoom).Status)
}

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	var appErr *AppError
	require.ErrorAs(t, WrapRedis(redis.Nil), &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	require.ErrorAs(t, WrapRedis(errBoom), &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, RedisErrorMessage, appErr.Message)
}

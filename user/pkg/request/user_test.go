package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMarshalRedactsPassword(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegisterMarshalRedactsPassword(t *testing.T) {
	expectedMap := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "***",
	}
	expected, _ := json.Marshal(expectedMap)
	registerReq := Register{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2",
	}

	actual, _ := json.Marshal(registerReq)

	assert.JSONEq(t, string(expected), string(actual))
	assert.EqualValues(t, "hunter2", registerReq.Password)
}

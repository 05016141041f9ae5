package variables

import (
	"log"
	"os"
	"strconv"
)

const (
	HTTP_PORT_DEFAULT = "8080"
	HTTP_PORT_NAME    = "HTTP_PORT"

	ROOM_MAX_CAPACITY_NAME    = "ROOM_MAX_CAPACITY"
	ROOM_MAX_CAPACITY_DEFAULT = "10"

	CONFERENCE_BASE_URL_NAME    = "CONFERENCE_BASE_URL"
	CONFERENCE_BASE_URL_DEFAULT = "https://overcast.daily.co"

	RECORDING_DISABLED_NAME    = "RECORDING_DISABLED"
	RECORDING_DISABLED_DEFAULT = "false"

	CAPTURE_DISABLED_NAME    = "CAPTURE_DISABLED"
	CAPTURE_DISABLED_DEFAULT = "false"
)

func Env(variableName, defaultValue string) string {
	if variable := os.Getenv(variableName); variable != "" {
		log.Printf("[%s]: %s", variableName, variable)
		return variable
	}
	log.Printf("[%s_DEFAULT]: %s", variableName, defaultValue)
	return defaultValue
}

func ParseInt(variable string) (int, error) {
	return strconv.Atoi(variable)
}

func ParseBool(variable string) bool {
	result, err := strconv.ParseBool(variable)
	if err != nil {
		return false
	}
	return result
}

package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomEmail returns a unique email address for test users.
func RandomEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
}

// RandomJoke returns a unique joke body so tests don't collide on content.
func RandomJoke() string {
	return fmt.Sprintf("Why did the test cross the road? To get to %s.", uuid.NewString()[:8])
}

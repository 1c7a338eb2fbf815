package cmd

// Exit codes returned by the readmegen binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred, including an
	// unwritable output file.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input: a malformed template, an
	// invalid flag value or a configuration that fails the schema.
	ExitValidationError = 2

	// ExitConnectivityError indicates the GitHub API could not be reached.
	ExitConnectivityError = 3

	// ExitPermissionDenied indicates a permission or authentication failure.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a repository path, template or remote repository
	// was not found.
	ExitNotFound = 5

	// ExitCancelled indicates the user declined a confirmation prompt.
	ExitCancelled = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConnectivityError:
		return "Connectivity Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

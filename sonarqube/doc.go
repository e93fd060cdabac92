// Package sonarqube provides a read-only client for the SonarQube Web API.
//
// The client authenticates with a user token, scopes queries to a project
// and optionally a branch, and transparently paginates multi-page result
// sets. All failures are reported as *Error values classified by kind, so
// callers can tell transport problems, API rejections, malformed responses,
// missing configuration, exceeded deadlines and failed analyses apart.
//
// # Usage
//
//	cfg := sonarqube.NewConfig("http://localhost:9000").
//	    WithToken("squ_...").
//	    WithProject("my-project")
//	client, err := sonarqube.NewClient(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	issues, err := client.SearchIssues(ctx, sonarqube.IssueSearchOptions{
//	    MinSeverity: "MAJOR",
//	})
//
// Operations never mutate server state, never retry failed requests and
// never cache responses. Pagination requests pages strictly in sequence and
// stops at a hard ceiling of 100 pages to guarantee termination even
// against inconsistent server-reported totals.
package sonarqube

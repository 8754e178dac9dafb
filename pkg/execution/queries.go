package execution

// StartWorkflowOperation is the operation identity used for result-cache
// fingerprints of workflow launches.
const StartWorkflowOperation = "startWorkflow"

const startWorkflowMutation = `mutation StartWorkflow($id: ID!, $orgId: ID!, $input: JSON) {
  startWorkflow(id: $id, orgId: $orgId, input: $input) {
    executionId
  }
}`

const executionStatusQuery = `query ExecutionStatus($id: ID!) {
  execution(id: $id) {
    id
    status
    numSuccessfulTasks
    conductor {
      status
      errors
      output
    }
  }
}`

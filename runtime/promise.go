package runtime

// PromiseStatus is the three-way outcome tag of a scheduled call.
type PromiseStatus int

const (
	// NotReady means the call has not resolved yet. The runtime resolves
	// dependencies before running continuations, so observing it is
	// abnormal, but every outcome switch still handles it.
	NotReady PromiseStatus = iota
	// Succeeded means the call resolved successfully.
	Succeeded
	// Failed means the call resolved with a failure.
	Failed
)

// String implements fmt.Stringer.
func (s PromiseStatus) String() string {
	switch s {
	case NotReady:
		return "NotReady"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// PromiseResult is the resolved outcome of one scheduled batch, observable
// only from the continuation registered to follow it. Payload holds the
// return value of the batch's last function call on success.
type PromiseResult struct {
	Status  PromiseStatus
	Payload []byte
}

// ActionKind enumerates the actions a batch can carry.
type ActionKind int

const (
	ActionCreateAccount ActionKind = iota
	ActionDeployContract
	ActionAddFullAccessKey
	ActionFunctionCall
	ActionTransfer
)

// Action is one step of a batch, executed in declared order against the
// batch target. Only the fields relevant to its kind are set.
type Action struct {
	Kind      ActionKind
	Code      []byte // ActionDeployContract
	PublicKey []byte // ActionAddFullAccessKey
	Method    string // ActionFunctionCall
	Args      []byte // ActionFunctionCall
	Deposit   Amount // ActionFunctionCall
	Gas       Gas    // ActionFunctionCall
	Amount    Amount // ActionTransfer
}

// PromiseBatch is an ordered sequence of actions against a single target
// account, optionally chained to a continuation batch that observes its
// outcome. Builders are append-only; the host consumes the batch after the
// scheduling entry point returns.
type PromiseBatch struct {
	Target  AccountID
	Actions []Action
	Next    *PromiseBatch
}

// CreateAccount appends an account-creation action.
func (b *PromiseBatch) CreateAccount() *PromiseBatch {
	b.Actions = append(b.Actions, Action{Kind: ActionCreateAccount})
	return b
}

// DeployContract appends a code-deployment action.
func (b *PromiseBatch) DeployContract(code []byte) *PromiseBatch {
	b.Actions = append(b.Actions, Action{Kind: ActionDeployContract, Code: code})
	return b
}

// AddFullAccessKey appends a key-attachment action for the given raw
// public key.
func (b *PromiseBatch) AddFullAccessKey(publicKey []byte) *PromiseBatch {
	b.Actions = append(b.Actions, Action{Kind: ActionAddFullAccessKey, PublicKey: publicKey})
	return b
}

// FunctionCall appends an invocation of the target's entry point with raw
// JSON args, an attached deposit and a gas budget.
func (b *PromiseBatch) FunctionCall(method string, args []byte, deposit Amount, gas Gas) *PromiseBatch {
	b.Actions = append(b.Actions, Action{
		Kind:    ActionFunctionCall,
		Method:  method,
		Args:    args,
		Deposit: deposit,
		Gas:     gas,
	})
	return b
}

// Transfer appends a plain balance transfer to the target.
func (b *PromiseBatch) Transfer(amount Amount) *PromiseBatch {
	b.Actions = append(b.Actions, Action{Kind: ActionTransfer, Amount: amount})
	return b
}

// Then chains a continuation batch against target, scheduled to run after
// this batch resolves and to observe its outcome. It returns the new batch.
func (b *PromiseBatch) Then(target AccountID) *PromiseBatch {
	next := &PromiseBatch{Target: target}
	b.Next = next
	return next
}

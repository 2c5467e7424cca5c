// Package install adds mod content to a destination tree without ever
// overwriting what is already there.
//
// Installation runs in two phases. [NewPlan] enumerates the source and
// decides an action for every item before anything is written; [Installer.Execute]
// then performs only the write actions. Zip archives are installed member by
// member, and a single .package or .ts4script file is installed as a
// one-step plan.
package install
